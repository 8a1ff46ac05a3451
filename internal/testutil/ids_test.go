package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewStaticIDGenerator("scenario-songs")

	assert.Equal(t, "scenario-songs", gen.Generate())
	assert.Equal(t, "scenario-songs", gen.Generate())
}

func TestStaticIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewStaticIDGenerator("")

	assert.Equal(t, "test-store-default", gen.Generate())
}

func TestStaticIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewStaticIDGenerator("thread-safe-id")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "thread-safe-id", gen.Generate())
			}
		}()
	}
	wg.Wait()
}
