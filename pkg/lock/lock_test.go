package lock

import (
	"sync"
	"testing"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	k := NewKeyed()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("team-1")
			counter++
			k.Unlock("team-1")
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected counter=50, got %d", counter)
	}
}

func TestKeyed_IndependentKeys(t *testing.T) {
	k := NewKeyed()

	k.Lock("team-1")
	done := make(chan struct{})
	go func() {
		// a different team must not block on team-1's lock
		k.Lock("team-2")
		k.Unlock("team-2")
		close(done)
	}()
	<-done
	k.Unlock("team-1")
}
