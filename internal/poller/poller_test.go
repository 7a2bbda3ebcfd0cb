package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunInvokesCallbackOnInterval(t *testing.T) {
	p := New(10 * time.Millisecond)

	var calls atomic.Int32

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	p.Run(ctx, func(context.Context) {
		calls.Add(1)
	})

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestStartStopsCleanly(t *testing.T) {
	p := New(5 * time.Millisecond)

	var calls atomic.Int32

	stop := p.Start(context.Background(), func(context.Context) {
		calls.Add(1)
	})

	time.Sleep(30 * time.Millisecond)
	stop()

	after := calls.Load()
	assert.Greater(t, after, int32(0))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no callbacks after stop")
}

func TestCallbackReceivesCancelledContextOnTeardown(t *testing.T) {
	p := New(5 * time.Millisecond)

	ctxSeen := make(chan context.Context, 1)

	stop := p.Start(context.Background(), func(ctx context.Context) {
		select {
		case ctxSeen <- ctx:
		default:
		}
	})

	var got context.Context

	select {
	case got = <-ctxSeen:
	case <-time.After(time.Second):
		t.Fatal("callback never invoked")
	}

	assert.NoError(t, got.Err())
	stop()
	assert.Error(t, got.Err(), "teardown cancels the context handed to callbacks")
}

func TestNonPositiveIntervalDefaults(t *testing.T) {
	assert.Equal(t, time.Second, New(0).Interval())
	assert.Equal(t, time.Second, New(-time.Minute).Interval())
}
