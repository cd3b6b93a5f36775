package realtime

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

// Peer is the write side of one client connection. Writes are serialized so
// concurrent broadcasts never interleave frames.
type Peer struct {
	mu           sync.Mutex
	conn         io.WriteCloser
	encoder      *json.Encoder
	writeTimeout time.Duration
}

func NewPeer(conn io.WriteCloser, writeTimeout time.Duration) *Peer {
	return &Peer{
		conn:         conn,
		encoder:      json.NewEncoder(conn),
		writeTimeout: writeTimeout,
	}
}

// Send writes v as a single JSON frame.
func (p *Peer) Send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if d, ok := p.conn.(deadlineWriter); ok && p.writeTimeout > 0 {
		if err := d.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
			return err
		}
	}
	return p.encoder.Encode(v)
}

func (p *Peer) Close() error {
	return p.conn.Close()
}
