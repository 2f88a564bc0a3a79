package wsendpoint

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheIdempotence(t *testing.T) {
	cache := newMetadataCache()
	endpointType := reflect.TypeOf(&textEndpoint{})

	first, err := cache.getOrCreate(endpointType)
	require.NoError(t, err)
	second, err := cache.getOrCreate(endpointType)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first.Text(), second.Text())
	assert.Equal(t, 1, cache.len())
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	cache := newMetadataCache()
	endpointType := reflect.TypeOf(&unusableShapeEndpoint{})

	_, err := cache.getOrCreate(endpointType)
	require.Error(t, err)
	assert.Equal(t, 0, cache.len())

	_, err = cache.getOrCreate(endpointType)
	require.Error(t, err)
}

func TestCacheConcurrentConvergence(t *testing.T) {
	cache := newMetadataCache()
	endpointType := reflect.TypeOf(&bothModalitiesEndpoint{})

	const callers = 64
	results := make([]*Metadata, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			meta, err := cache.getOrCreate(endpointType)
			assert.NoError(t, err)
			results[i] = meta
		}(i)
	}
	start.Done()
	done.Wait()

	// Racing callers may compute duplicates, but everyone observes the one
	// published entry, fully constructed.
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
	require.NotNil(t, results[0])
	assert.NotNil(t, results[0].Open())
	assert.NotNil(t, results[0].Close())
	assert.NotNil(t, results[0].Error())
	assert.NotNil(t, results[0].Text())
	assert.NotNil(t, results[0].Binary())
	assert.Equal(t, 1, cache.len())
}
