package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerAllUp(t *testing.T) {
	c := NewChecker(time.Second).
		Add("store", PingFunc(func(context.Context) error { return nil })).
		Add("redis", nil)

	st := c.Check(context.Background())
	assert.True(t, st.Up())
	assert.Equal(t, map[string]string{"store": "UP"}, st.Checks)
}

func TestCheckerReportsDown(t *testing.T) {
	c := NewChecker(time.Second).
		Add("store", PingFunc(func(context.Context) error { return errors.New("no reachable servers") })).
		Add("redis", PingFunc(func(context.Context) error { return nil }))

	st := c.Check(context.Background())
	assert.False(t, st.Up())
	assert.Equal(t, "DOWN: no reachable servers", st.Checks["store"])
	assert.Equal(t, "UP", st.Checks["redis"])
}

func TestCheckerCoalescesConcurrentProbes(t *testing.T) {
	var calls, entered atomic.Int32
	release := make(chan struct{})
	c := NewChecker(time.Second).Add("store", PingFunc(func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entered.Add(1)
			assert.True(t, c.Check(context.Background()).Up())
		}()
	}
	require.Eventually(t, func() bool { return entered.Load() == 8 && calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond) // 让其余 goroutine 挂到同一个 flight 上
	close(release)
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}
