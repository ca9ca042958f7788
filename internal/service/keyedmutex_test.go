package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexMutualExclusion(t *testing.T) {
	km := NewKeyedMutex()

	const n = 64
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(7)
			counter++ // data race unless the lock serializes
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, n, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	unlockA := km.Lock(1)
	done := make(chan struct{})
	go func() {
		// a different key must not block
		unlock := km.Lock(2)
		unlock()
		close(done)
	}()
	<-done
	unlockA()
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	km := NewKeyedMutex()

	unlock := km.Lock(3)
	unlock()
	unlock2 := km.Lock(3)
	unlock2()

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.entries)
}
