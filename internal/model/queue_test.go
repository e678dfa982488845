package model_test

import (
	"testing"

	"github.com/benbeisheim/chessmaster-backend/internal/model"
	"github.com/benbeisheim/chessmaster-backend/internal/testutil"
)

func TestQueue(t *testing.T) {
	q := model.NewQueue()
	for _, id := range []string{"alice", "bob", "carol"} {
		testutil.AssertNoError(t, q.AddPlayer(model.Player{ID: id}))
	}
	if err := q.AddPlayer(model.Player{ID: "bob"}); err == nil {
		t.Error("queued bob twice")
	}
	testutil.AssertEqual(t, q.Size(), 3)

	if !q.RemovePlayer("bob") || q.RemovePlayer("bob") {
		t.Error("RemovePlayer should succeed exactly once")
	}

	p1, p2, ok := q.GetNextPair()
	if !ok {
		t.Fatal("no pair from two queued players")
	}
	testutil.AssertEqual(t, []string{p1.ID, p2.ID}, []string{"alice", "carol"})

	if _, _, ok := q.GetNextPair(); ok {
		t.Error("pair from an empty queue")
	}
	testutil.AssertEqual(t, q.Size(), 0)
}
