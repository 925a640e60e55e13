package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentlab/core"
)

func TestInMemoryStore_AppendAndMessages(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	err := store.Append(ctx, "s1",
		core.NewUserText("hello"),
		core.NewAssistantText("hi!"),
	)
	require.NoError(t, err)

	messages, err := store.Messages(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Text())
	assert.Equal(t, "hi!", messages[1].Text())
}

func TestInMemoryStore_UnknownSessionIsEmpty(t *testing.T) {
	store := NewInMemoryStore()

	messages, err := store.Messages(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestInMemoryStore_SessionsAreIsolated(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", core.NewUserText("for a")))
	require.NoError(t, store.Append(ctx, "b", core.NewUserText("for b")))

	a, _ := store.Messages(ctx, "a")
	b, _ := store.Messages(ctx, "b")

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.NotEqual(t, a[0].Text(), b[0].Text())
}

func TestInMemoryStore_Clear(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", core.NewUserText("hello")))
	require.NoError(t, store.Clear(ctx, "s1"))

	messages, err := store.Messages(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestInMemoryStore_MessagesReturnsCopy(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", core.NewUserText("hello")))

	messages, _ := store.Messages(ctx, "s1")
	messages[0] = core.NewUserText("mutated")

	fresh, _ := store.Messages(ctx, "s1")
	assert.Equal(t, "hello", fresh[0].Text())
}

func TestInMemoryStore_ConcurrentAppends(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func(n int) {
			defer wg.Done()
			_ = store.Append(ctx, "shared", core.NewUserText(fmt.Sprintf("msg-%d", n)))
		}(i)
	}

	wg.Wait()

	messages, err := store.Messages(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, messages, 20)
}
