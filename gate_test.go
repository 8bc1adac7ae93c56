package mmb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlightGate_SecondAcquireIsFollower(t *testing.T) {
	g := newSingleFlightGate()
	id := uuid.New()

	ch1, leader1 := g.acquire(id)
	require.True(t, leader1)

	ch2, leader2 := g.acquire(id)
	assert.False(t, leader2)
	assert.True(t, ch1 == ch2, "follower must observe the leader's channel")

	g.release(id, ch1)

	select {
	case <-ch2:
	default:
		t.Fatal("release must close the channel followers observe")
	}
}

func TestSingleFlightGate_ReleaseAllowsNewLeader(t *testing.T) {
	g := newSingleFlightGate()
	id := uuid.New()

	ch1, _ := g.acquire(id)
	g.release(id, ch1)

	_, leader2 := g.acquire(id)
	assert.True(t, leader2)
}
