package wizard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAtMostOnePerScope(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.TryAcquire(&Session{ScopeId: "guild-1"}))
	assert.False(t, r.TryAcquire(&Session{ScopeId: "guild-1"}))
	assert.True(t, r.TryAcquire(&Session{ScopeId: "guild-2"}))

	r.Release("guild-1")
	assert.True(t, r.TryAcquire(&Session{ScopeId: "guild-1"}))
}

func TestRegistryReleaseIdempotent(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.TryAcquire(&Session{ScopeId: "guild-1"}))
	r.Release("guild-1")
	r.Release("guild-1")
	assert.True(t, r.TryAcquire(&Session{ScopeId: "guild-1"}))
}

func TestRegistryReleaseUnknownScope(t *testing.T) {
	r := NewRegistry()
	r.Release("never-acquired")
	assert.True(t, r.TryAcquire(&Session{ScopeId: "never-acquired"}))
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	s := &Session{ScopeId: "guild-1"}
	assert.Nil(t, r.Lookup("guild-1"))
	r.TryAcquire(s)
	assert.Same(t, s, r.Lookup("guild-1"))
	r.Release("guild-1")
	assert.Nil(t, r.Lookup("guild-1"))
}

func TestRegistryConcurrentAcquire(t *testing.T) {
	r := NewRegistry()
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryAcquire(&Session{ScopeId: "guild-1"}) {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
