package engine

import "sync"

// PreferencesCache is the language -> (preference-id -> label) map for the
// grammar kind (spec.md §4.4). Its writers are Bootstrap (which loads
// several files at once) and the Watcher; its readers are the concurrent
// Dispatcher calls. mu guards every access.
type PreferencesCache struct {
	mu    sync.RWMutex
	prefs map[string]map[string]string
}

// NewPreferencesCache constructs an empty cache.
func NewPreferencesCache() *PreferencesCache {
	return &PreferencesCache{prefs: make(map[string]map[string]string)}
}

// Get returns the preference map for language, or false if absent. Grammar
// request handlers must tolerate a missing entry as empty (spec.md §4.4).
func (c *PreferencesCache) Get(language string) (map[string]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prefs[language]
	return p, ok
}

func (c *PreferencesCache) set(language string, prefs map[string]string) {
	c.mu.Lock()
	c.prefs[language] = prefs
	c.mu.Unlock()
}

func (c *PreferencesCache) delete(language string) {
	c.mu.Lock()
	delete(c.prefs, language)
	c.mu.Unlock()
}

// Languages returns the set of languages with cached preferences.
func (c *PreferencesCache) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	langs := make([]string, 0, len(c.prefs))
	for lang := range c.prefs {
		langs = append(langs, lang)
	}
	return langs
}

// GrammarRegistry pairs the grammar Kind Registry with the PreferencesCache
// and enforces the fixed mutation ordering spec.md §4.4 requires: registry
// first then cache on insert, cache first then registry on remove. That
// ordering guarantees a concurrent reader only ever observes
// (handle, no-prefs) or (no-handle), never (no-handle, stale-prefs).
type GrammarRegistry struct {
	Registry *Registry[GrammarRequest, GrammarResponse]
	Prefs    *PreferencesCache
}

// NewGrammarRegistry constructs an empty grammar registry + preferences pair.
func NewGrammarRegistry() *GrammarRegistry {
	return &GrammarRegistry{
		Registry: NewRegistry[GrammarRequest, GrammarResponse](Grammar),
		Prefs:    NewPreferencesCache(),
	}
}

// GrammarBuild is the factory for a grammar worker: it must yield both the
// worker and its static preferences in one shot, since a failure to list
// preferences is fatal for the whole insertion (spec.md §4.4) — the file is
// rejected, no worker is created, and the cache is left untouched.
type GrammarBuild func() (worker *Worker[GrammarRequest, GrammarResponse], prefs map[string]string, err error)

// Insert builds a worker+preferences pair and installs them in the fixed
// order: registry swap, then cache set. Any displaced worker is shut down
// after both steps, outside any lock.
func (g *GrammarRegistry) Insert(language string, build GrammarBuild) error {
	w, prefs, err := build()
	if err != nil {
		return err
	}

	displaced, err := g.Registry.Insert(language, func() (*Worker[GrammarRequest, GrammarResponse], error) {
		return w, nil
	})
	if err != nil {
		// Insert's own factory above never errors; kept for symmetry with Registry's contract.
		return err
	}
	g.Prefs.set(language, prefs)

	if displaced != nil {
		displaced.Shutdown()
	}
	return nil
}

// Remove clears the cached preferences first, then removes and shuts down
// the registry entry.
func (g *GrammarRegistry) Remove(language string) {
	g.Prefs.delete(language)
	g.Registry.RemoveAndShutdown(language)
}
