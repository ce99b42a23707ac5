package mainloop

import (
	"context"
	"errors"
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

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	var got []int
	for i := 0; i < 10; i++ {
		v := i
		require.True(t, l.Post(func(context.Context) { got = append(got, v) }))
	}
	require.NoError(t, l.Invoke(context.Background(), func(context.Context) error { return nil }))

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestLoopInvokeReturnsError(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	boom := errors.New("boom")
	err := l.Invoke(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestLoopInvokeIsReentrant(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	inner := false
	err := l.Invoke(context.Background(), func(ctx context.Context) error {
		require.True(t, l.OnLoop(ctx))
		return l.Invoke(ctx, func(context.Context) error {
			inner = true
			return nil
		})
	})
	require.NoError(t, err)
	assert.True(t, inner)
	assert.False(t, l.OnLoop(context.Background()))
}

func TestLoopSerializesConcurrentCallers(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Invoke(context.Background(), func(context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestLoopRecoversFromPanic(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	l.Post(func(context.Context) { panic("task failure") })
	err := l.Invoke(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestLoopClosedRejectsWork(t *testing.T) {
	l := New(context.Background())
	l.Close()
	l.Close()

	assert.False(t, l.Post(func(context.Context) {}))
	err := l.Invoke(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrLoopClosed)
}

func TestLoopInvokeHonoursCallerContext(t *testing.T) {
	l := New(context.Background())
	defer l.Close()

	release := make(chan struct{})
	l.Post(func(context.Context) { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Invoke(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}
