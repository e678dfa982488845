package ws

import "sync"

// JSONConn is a connection that writes JSON messages.
type JSONConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// SyncConn allows one writer at a time on a connection. The websocket
// library panics on concurrent writes, and a game socket is written by its
// own read loop as well as by broadcasts from other players' events.
type SyncConn struct {
	mu   sync.Mutex
	conn JSONConn
}

func NewSyncConn(conn JSONConn) *SyncConn {
	return &SyncConn{conn: conn}
}

func (c *SyncConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *SyncConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
