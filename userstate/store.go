package userstate

import "sync"

// Listener is called with the new state after every dispatch.
type Listener func(State)

// Store owns one State. All changes go through Dispatch, one Reduce call per
// action, so observers never see a partially applied transition.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store holding InitialState.
func NewStore() *Store {
	return NewStoreWithState(InitialState())
}

// NewStoreWithState creates a store holding a copy of s.
func NewStoreWithState(s State) *Store {
	return &Store{
		state:     s.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Dispatch applies a to the current state and notifies listeners.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
