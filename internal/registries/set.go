// Package registries wires the three typed Kind Registries (spec.md §4.3)
// together with the default native-engine factories, so Bootstrap, the
// Watcher, and the Dispatcher share one construction path for every
// (kind, language) — the same path Watcher uses for hot reload, Bootstrap
// uses in bulk, and the Dispatcher only ever reads from.
package registries

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/nativeengine"
)

// Set bundles the three per-kind registries, constructing workers through
// the default nativeengine openers. queueSize and logger are threaded
// through to every worker spawned this way.
type Set struct {
	Spelling    *engine.Registry[engine.SpellerRequest, engine.SpellerResponse]
	Grammar     *engine.GrammarRegistry
	Hyphenation *engine.Registry[engine.HyphenationRequest, engine.HyphenationResponse]

	queueSize int
	logger    *zap.Logger
}

// New constructs an empty Set. queueSize bounds each worker's request queue.
func New(queueSize int, logger *zap.Logger) *Set {
	return &Set{
		Spelling:    engine.NewRegistry[engine.SpellerRequest, engine.SpellerResponse](engine.Spelling),
		Grammar:     engine.NewGrammarRegistry(),
		Hyphenation: engine.NewRegistry[engine.HyphenationRequest, engine.HyphenationResponse](engine.Hyphenation),
		queueSize:   queueSize,
		logger:      logger,
	}
}

// Load opens df's engine and installs (or replaces) it in the registry for
// df.Kind. This is the single construction path shared by Bootstrap and the
// Watcher's Create/Write handling.
func (s *Set) Load(df engine.DataFile) error {
	switch df.Kind {
	case engine.Spelling:
		return s.Spelling.Upsert(df.Language, func() (*engine.Worker[engine.SpellerRequest, engine.SpellerResponse], error) {
			return engine.Open(engine.Spelling, df.Language, df.Path, nativeengine.OpenSpeller, s.queueSize, s.logger)
		})
	case engine.Grammar:
		return s.Grammar.Insert(df.Language, func() (*engine.Worker[engine.GrammarRequest, engine.GrammarResponse], map[string]string, error) {
			eng, prefs, err := nativeengine.OpenGrammarWithPreferences(df.Path)
			if err != nil {
				corrupt := !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission)
				return nil, nil, &engine.OpenError{Kind: engine.Grammar, Language: df.Language, Path: df.Path, Corrupt: corrupt, Cause: err}
			}
			w := engine.OpenWithEngine[engine.GrammarRequest, engine.GrammarResponse](engine.Grammar, df.Language, df.Path, eng, s.queueSize, s.logger)
			return w, prefs, nil
		})
	case engine.Hyphenation:
		return s.Hyphenation.Upsert(df.Language, func() (*engine.Worker[engine.HyphenationRequest, engine.HyphenationResponse], error) {
			return engine.Open(engine.Hyphenation, df.Language, df.Path, nativeengine.OpenHyphenation, s.queueSize, s.logger)
		})
	default:
		return fmt.Errorf("registries: unknown kind %q", df.Kind)
	}
}

// Remove drops and shuts down language's worker for kind, if present. For
// grammar this clears cached preferences first (spec.md §4.4).
func (s *Set) Remove(kind engine.Kind, language string) {
	switch kind {
	case engine.Spelling:
		s.Spelling.RemoveAndShutdown(language)
	case engine.Grammar:
		s.Grammar.Remove(language)
	case engine.Hyphenation:
		s.Hyphenation.RemoveAndShutdown(language)
	}
}

// Languages lists the languages currently registered for kind.
func (s *Set) Languages(kind engine.Kind) []string {
	switch kind {
	case engine.Spelling:
		return s.Spelling.Languages()
	case engine.Grammar:
		return s.Grammar.Registry.Languages()
	case engine.Hyphenation:
		return s.Hyphenation.Languages()
	default:
		return nil
	}
}
