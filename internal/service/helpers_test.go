package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbeisheim/chessmaster-backend/internal/loader"
	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/testutil"
	"github.com/benbeisheim/chessmaster-backend/internal/ws"
	"github.com/rs/zerolog"
)

var errClosed = errors.New("connection closed")

// fakeConn records every message written to it.
type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail || c.closed {
		return errClosed
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) last() ws.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages[len(c.messages)-1]
}

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

func testSettings() Settings {
	return Settings{
		StartingPosition: loader.Default(),
		ClockTime:        10 * time.Minute,
		MatchInterval:    10 * time.Millisecond,
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("game-1", loader.Default(), 10*time.Minute, zerolog.Nop())
	testutil.AssertNoError(t, err)
	return s
}

// seatedSession returns a session with "alice" as white and "bob" as black.
func seatedSession(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	for _, id := range []string{"alice", "bob"} {
		if _, err := s.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	return s
}

func mustCell(t *testing.T, s string) model.Cell {
	t.Helper()
	c, err := model.ParseCell(s)
	testutil.AssertNoError(t, err)
	return c
}

// playMoves plays "e2e4"-style moves, alternating alice and bob from white.
func playMoves(t *testing.T, s *Session, moves ...string) State {
	t.Helper()
	var state State
	for _, m := range moves {
		player := "alice"
		if s.State().ToMove == model.Black {
			player = "bob"
		}
		var err error
		state, err = s.Move(player, mustCell(t, m[:2]), mustCell(t, m[2:]))
		if err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
	return state
}
