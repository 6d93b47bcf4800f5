package tree

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoop_CallRunsOnOwner(t *testing.T) {
	loop := NewLoop(4)
	loop.Start(context.Background())
	defer loop.Stop()

	ran := false
	loop.Call(func() { ran = true })
	assert.True(t, ran)
}

func TestLoop_CallsAreSerialized(t *testing.T) {
	loop := NewLoop(4)
	loop.Start(context.Background())
	defer loop.Stop()

	// Without external locking, concurrent increments through the loop must
	// not lose updates; the single owner serializes them.
	counter := 0
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Call(func() { counter++ })
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, counter)
}

func TestLoop_CallAfterStopReturns(t *testing.T) {
	loop := NewLoop(1)
	loop.Start(context.Background())
	loop.Stop()

	done := make(chan struct{})
	go func() {
		loop.Call(func() { t.Error("must not run after stop") })
		close(done)
	}()
	<-done
}
