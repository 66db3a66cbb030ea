package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDispatcher_PreservesOrder(t *testing.T) {
	d := NewDispatcher()
	defer func() {
		d.Close()
		<-d.Done()
	}()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 100 {
		require.True(t, d.Submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}

	require.NoError(t, d.Flush(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDispatcher_SubmitAfterClose(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	<-d.Done()

	assert.False(t, d.Submit(func() { t.Error("must not run") }))
	assert.NoError(t, d.Flush(context.Background()))
}

func TestDispatcher_CloseFromDispatchedFunc(t *testing.T) {
	d := NewDispatcher()

	ran := make(chan struct{})
	d.Submit(func() {
		d.Close()
		close(ran)
	})
	d.Submit(func() { t.Error("queued after close must be dropped") })

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("dispatched function did not run")
	}
	select {
	case <-d.Done():
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestDispatcher_FlushHonorsContext(t *testing.T) {
	d := NewDispatcher()
	defer func() {
		d.Close()
		<-d.Done()
	}()

	block := make(chan struct{})
	d.Submit(func() { <-block })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Flush(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(block)
}

func TestDispatcher_FlushFromDispatchedFunc(t *testing.T) {
	d := NewDispatcher()
	defer func() {
		d.Close()
		<-d.Done()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result := make(chan error, 1)
	require.True(t, d.Submit(func() { result <- d.Flush(ctx) }))
	var ran bool
	require.True(t, d.Submit(func() { ran = true }))

	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrFlushFromDispatcher)
	case <-ctx.Done():
		t.Fatal("flush inside a dispatched function blocked")
	}

	require.NoError(t, d.Flush(ctx))
	assert.True(t, ran, "later functions still run")
}

func TestGoroutineID(t *testing.T) {
	own := goroutineID()
	require.NotZero(t, own)
	assert.Equal(t, own, goroutineID())

	other := make(chan uint64)
	go func() { other <- goroutineID() }()
	assert.NotEqual(t, own, <-other)
}
