package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Redacted is the JSON value that replaces a hidden number.
const Redacted = "???"

// Stat is a leaderboard number that may be hidden from the viewer.
type Stat struct {
	Value  int
	Hidden bool
}

func Shown(v int) Stat {
	return Stat{Value: v}
}

func Hidden() Stat {
	return Stat{Hidden: true}
}

func (s Stat) MarshalJSON() ([]byte, error) {
	if s.Hidden {
		return json.Marshal(Redacted)
	}
	return strconv.AppendInt(nil, int64(s.Value), 10), nil
}

func (s *Stat) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		if text != Redacted {
			return fmt.Errorf("unexpected stat value %q", text)
		}
		*s = Hidden()
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Shown(v)
	return nil
}
