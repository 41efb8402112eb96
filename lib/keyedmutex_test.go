package lib_test

import (
	"sync"
	"testing"

	"tindahan_server/lib"
)

func TestKeyedMutex_EntriesDropOnRelease(t *testing.T) {
	km := lib.NewKeyedMutex[string]()

	unlockA := km.Lock("a")
	unlockB := km.Lock("b")
	if km.Len() != 2 {
		t.Fatalf("want 2 live entries, got %d", km.Len())
	}

	unlockA()
	unlockB()
	if km.Len() != 0 {
		t.Fatalf("released entries must be dropped, got %d", km.Len())
	}
}

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := lib.NewKeyedMutex[string]()

	const workers = 8
	const rounds = 50
	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				unlock := km.Lock("draft")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Fatalf("lost updates: %d", counter)
	}
	if km.Len() != 0 {
		t.Fatalf("contended entry must be dropped once idle, got %d", km.Len())
	}
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := lib.NewKeyedMutex[string]()

	unlockA := km.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := km.Lock("b")
		unlock()
		close(done)
	}()
	<-done
}
