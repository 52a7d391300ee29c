package userstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DispatchAndSnapshot(t *testing.T) {
	store := NewStore()

	store.Dispatch(SetLoading{Loading: true})
	store.Dispatch(AddUser{User: testUser("1", "John", "Doe", "NYC")})

	snap := store.Snapshot()
	require.Len(t, snap.Users, 1)
	assert.False(t, snap.Loading)

	snap.Users[0].FirstName = "Mutated"
	assert.Equal(t, "John", store.Snapshot().Users[0].FirstName, "snapshot must be a copy")
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore()

	var seen []State
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s)
	})

	store.Dispatch(SetLoading{Loading: true})
	store.Dispatch(SetError{Message: "boom"})
	unsubscribe()
	store.Dispatch(SetLoading{Loading: true})

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.Equal(t, "boom", seen[1].Error)
	assert.False(t, seen[1].Loading)
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	store := NewStore()

	var loading bool
	store.Subscribe(func(State) {
		loading = store.Snapshot().Loading
	})

	store.Dispatch(SetLoading{Loading: true})
	assert.True(t, loading)
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Dispatch(AddUser{User: testUser(string(rune('a'+i%26))+string(rune('0'+i/26)), "Fn", "Ln", "Res")})
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Snapshot().Users, 50)
}

func TestNewStoreWithState_Copies(t *testing.T) {
	initial := stateWith(testUser("1", "John", "Doe", "NYC"))
	store := NewStoreWithState(initial)

	initial.Users[0].FirstName = "Changed"
	assert.Equal(t, "John", store.Snapshot().Users[0].FirstName)
}
