package animation

import "sync"

// Shared is the model handle given to the process. The process is the only
// writer; the render loop reads through an Accessor.
type Shared[M any] struct {
	mu    sync.RWMutex
	model *M
}

func newShared[M any](model *M) *Shared[M] {
	return &Shared[M]{model: model}
}

// Update applies fn to the model under the write lock.
func (s *Shared[M]) Update(fn func(m *M)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.model)
}

// Accessor is the read-only view of the model handed to View. It caches
// nothing: every read goes to the live model.
type Accessor[M any] struct {
	shared *Shared[M]
}

// Read calls fn with the model under the read lock. All reads made inside fn
// observe the same model state.
func (a *Accessor[M]) Read(fn func(m *M)) {
	a.shared.mu.RLock()
	defer a.shared.mu.RUnlock()
	fn(a.shared.model)
}

// Get returns project applied to the live model. Projections that return
// slices or maps should copy them.
func Get[M, T any](a *Accessor[M], project func(m *M) T) T {
	var v T
	a.Read(func(m *M) { v = project(m) })
	return v
}

// Field is a named read projection over the model, declared by the
// animation that owns the model type.
type Field[M, T any] func(m *M) T

func (f Field[M, T]) Get(a *Accessor[M]) T {
	return Get[M, T](a, f)
}
