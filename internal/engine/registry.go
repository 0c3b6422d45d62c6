package engine

import "sync"

// Registry is the thread-safe language -> worker handle map for one engine
// kind (spec.md §4.3, KindRegistry[K]). Lookups take a read lock; mutations
// take a write lock only long enough to swap a map entry, never while
// constructing or shutting down a worker.
type Registry[Req any, Resp any] struct {
	kind Kind

	mu      sync.RWMutex
	workers map[string]*Worker[Req, Resp]
}

// NewRegistry constructs an empty registry for kind.
func NewRegistry[Req any, Resp any](kind Kind) *Registry[Req, Resp] {
	return &Registry[Req, Resp]{
		kind:    kind,
		workers: make(map[string]*Worker[Req, Resp]),
	}
}

// Lookup returns the worker handle for language, or false if none is
// registered. The returned handle remains valid for the duration of one
// request even if the entry is removed immediately afterwards (spec.md §4.3,
// invariant i).
func (r *Registry[Req, Resp]) Lookup(language string) (*Worker[Req, Resp], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[language]
	return w, ok
}

// Insert builds a new worker via factory (invoked before the lock is
// taken) and atomically swaps it into the map. If a worker was already
// registered for language, it is returned so the caller can shut it down
// — the shutdown itself must happen outside the lock, which Insert
// already guarantees by returning after unlocking (spec.md §4.3, Replace
// semantics): readers never observe an absent entry during the swap.
func (r *Registry[Req, Resp]) Insert(language string, factory func() (*Worker[Req, Resp], error)) (displaced *Worker[Req, Resp], err error) {
	w, err := factory()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	displaced = r.workers[language]
	r.workers[language] = w
	r.mu.Unlock()

	return displaced, nil
}

// Remove extracts and returns the entry for language, if any. The caller
// shuts the returned worker down outside the lock.
func (r *Registry[Req, Resp]) Remove(language string) *Worker[Req, Resp] {
	r.mu.Lock()
	w, ok := r.workers[language]
	if ok {
		delete(r.workers, language)
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return w
}

// Languages returns the set of languages currently registered.
func (r *Registry[Req, Resp]) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.workers))
	for lang := range r.workers {
		langs = append(langs, lang)
	}
	return langs
}

// Count returns the number of workers currently registered.
func (r *Registry[Req, Resp]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}

// Upsert is Insert followed by shutting down any displaced worker, which is
// the common case for plain (non-grammar) kinds: Watcher and Bootstrap never
// need to hold on to the displaced handle themselves.
func (r *Registry[Req, Resp]) Upsert(language string, factory func() (*Worker[Req, Resp], error)) error {
	displaced, err := r.Insert(language, factory)
	if err != nil {
		return err
	}
	if displaced != nil {
		displaced.Shutdown()
	}
	return nil
}

// RemoveAndShutdown removes language's entry, if any, and shuts it down.
func (r *Registry[Req, Resp]) RemoveAndShutdown(language string) {
	if w := r.Remove(language); w != nil {
		w.Shutdown()
	}
}
