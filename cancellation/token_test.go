package cancellation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoflashboy/mmb/cancellation"
)

func TestToken_CancelIsIdempotentAndWakesWaiters(t *testing.T) {
	tok := cancellation.Background()
	require.False(t, tok.IsCancellationRequested())

	done := make(chan struct{})
	go func() {
		<-tok.WhenCancelled()
		close(done)
	}()

	tok.Cancel()
	tok.Cancel() // second call must not panic or block

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiter was not woken by Cancel")
	}
	assert.True(t, tok.IsCancellationRequested())
}

func TestToken_LinkedChildDoesNotCancelParent(t *testing.T) {
	parent := cancellation.Background()
	child := parent.CreateLinkedToken()

	child.Cancel()

	assert.True(t, child.IsCancellationRequested())
	assert.False(t, parent.IsCancellationRequested())
}

func TestToken_ParentCancelCancelsChild(t *testing.T) {
	parent := cancellation.Background()
	child := parent.CreateLinkedToken()

	parent.Cancel()

	assert.True(t, parent.IsCancellationRequested())
	assert.True(t, child.IsCancellationRequested())
}

func TestToken_FromExternalContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tok := cancellation.New(ctx)

	cancel()

	select {
	case <-tok.WhenCancelled():
	case <-time.After(time.Second):
		t.Fatal("token did not observe parent context cancellation")
	}
}
