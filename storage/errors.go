package storage

import "errors"

var ErrMatchNotFound = errors.New("match not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with id already exists")
var ErrStatusConflict = errors.New("match status changed concurrently")

// DefaultListLimit caps match listings when the caller gives no limit.
const DefaultListLimit = 100
