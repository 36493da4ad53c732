package location

import (
	"sync"
	"testing"
)

func TestKeyedLock_SerializesSameKey(t *testing.T) {
	t.Parallel()

	locks := newKeyedLock()
	const goroutines = 64

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Fatalf("expected %d increments, got %d", goroutines, counter)
	}
}

func TestKeyedLock_IndependentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	locks := newKeyedLock()
	unlockA := locks.lock(1)

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(2)
		unlockB()
		close(done)
	}()
	<-done

	unlockA()
}

func TestKeyedLock_EntriesRemovedAfterRelease(t *testing.T) {
	t.Parallel()

	locks := newKeyedLock()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(key int64) {
			defer wg.Done()
			unlock := locks.lock(key % 4)
			unlock()
		}(int64(i))
	}
	wg.Wait()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.entries) != 0 {
		t.Fatalf("expected empty entry map, got %d entries", len(locks.entries))
	}
}
