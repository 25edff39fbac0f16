package repo_test

import (
	"context"
	"sync"
	"testing"

	"github.com/harked/alfresco-bulk-import/core/repo"
	"github.com/harked/alfresco-bulk-import/core/repo/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedResolverMemoizesHits(t *testing.T) {
	root := repo.NewNodeRef()
	target := repo.NewNodeRef()

	inner := new(mocks.Resolver)
	inner.On("ResolvePath", mock.Anything, root, []string{"a", "b"}, false).
		Return(&target, nil).Once()

	cached := repo.NewCachedResolver(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ref, err := cached.ResolvePath(ctx, root, []string{"a", "b"}, false)
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, target, *ref)
	}

	inner.AssertExpectations(t)
	inner.AssertNumberOfCalls(t, "ResolvePath", 1)
}

func TestCachedResolverDoesNotCacheMisses(t *testing.T) {
	root := repo.NewNodeRef()

	inner := new(mocks.Resolver)
	inner.On("ResolvePath", mock.Anything, root, []string{"missing"}, false).
		Return(nil, nil)

	cached := repo.NewCachedResolver(inner)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ref, err := cached.ResolvePath(ctx, root, []string{"missing"}, false)
		require.NoError(t, err)
		assert.Nil(t, ref)
	}

	// An absent path must reach the resolver every time.
	inner.AssertNumberOfCalls(t, "ResolvePath", 2)
}

func TestCachedResolverConcurrentSamePath(t *testing.T) {
	root := repo.NewNodeRef()
	target := repo.NewNodeRef()

	inner := new(mocks.Resolver)
	inner.On("ResolvePath", mock.Anything, root, []string{"a"}, false).
		Return(&target, nil)

	cached := repo.NewCachedResolver(inner)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := cached.ResolvePath(ctx, root, []string{"a"}, false)
			assert.NoError(t, err)
			assert.NotNil(t, ref)
		}()
	}
	wg.Wait()

	// singleflight collapses the concurrent walks; the memoized hit
	// serves everything afterwards. Exactly-one is not guaranteed for
	// racing first calls, but it must be far below the caller count.
	assert.LessOrEqual(t, len(inner.Calls), 2)
}
