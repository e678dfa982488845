package ws

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// overlapConn counts writes that start while another write is in progress.
type overlapConn struct {
	active   int32
	overlaps int32
	writes   int32
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.active, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.writes, 1)
	atomic.AddInt32(&c.active, -1)
	return nil
}

func (c *overlapConn) Close() error { return nil }

func TestSyncConnSerialisesWriters(t *testing.T) {
	raw := &overlapConn{}
	conn := NewSyncConn(raw)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg, err := NewMessage(MessageTypeError, ErrorPayload{Error: "x"})
			if err != nil {
				t.Error(err)
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&raw.overlaps); n != 0 {
		t.Errorf("%d overlapping writes", n)
	}
	if n := atomic.LoadInt32(&raw.writes); n != 8 {
		t.Errorf("writes = %d, want 8", n)
	}
}
