// Package dispatch implements C5 (spec.md §4.5): the stateless façade that
// turns a (kind, language, request) triple into a response, or a
// DispatchError a transport layer can map to a structured client error.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/langtable"
	"github.com/oxhq/langserved/internal/registries"
)

// ErrorKind classifies a DispatchError for transport-layer status mapping
// (spec.md §7).
type ErrorKind string

const (
	NoSuchLanguage ErrorKind = "no_such_language"
	EngineFault    ErrorKind = "engine_fault"
)

// DispatchError is the single point at which core errors are translated
// into transport-visible ones. EngineKind is set for NoSuchLanguage errors
// so the message can name the right noun ("speller", "grammar checker",
// "hyphenator").
type DispatchError struct {
	Kind       ErrorKind
	EngineKind engine.Kind
	Language   string
	Cause      error
}

// Error's wording is unified across all three kinds (spec.md §9, Open
// Question c): "No <noun> available for language {lang}".
func (e *DispatchError) Error() string {
	switch e.Kind {
	case NoSuchLanguage:
		return fmt.Sprintf("No %s available for language %s", e.EngineKind.Noun(), e.Language)
	case EngineFault:
		return fmt.Sprintf("engine fault for language %s: %v", e.Language, e.Cause)
	default:
		return "dispatch error"
	}
}

func (e *DispatchError) Unwrap() error { return e.Cause }

func noSuchLanguage(kind engine.Kind, language string) *DispatchError {
	return &DispatchError{Kind: NoSuchLanguage, EngineKind: kind, Language: language}
}

// Dispatcher holds references to the three Kind Registries and the
// Preferences Cache. It is stateless beyond those references and safe for
// concurrent use.
type Dispatcher struct {
	set *registries.Set
}

// New constructs a Dispatcher over set. Dispatch must not be opened for
// requests until Bootstrap has returned (spec.md §4.7).
func New(set *registries.Set) *Dispatcher {
	return &Dispatcher{set: set}
}

// SuggestSpelling forwards req to the speller for language.
func (d *Dispatcher) SuggestSpelling(ctx context.Context, language string, req engine.SpellerRequest) (engine.SpellerResponse, error) {
	w, ok := d.set.Spelling.Lookup(language)
	if !ok {
		return engine.SpellerResponse{}, noSuchLanguage(engine.Spelling, language)
	}
	resp, err := w.Suggest(ctx, req)
	if err != nil {
		return engine.SpellerResponse{}, wrapWorkerError(language, err)
	}
	return resp, nil
}

// SuggestGrammar forwards req to the grammar checker for language.
func (d *Dispatcher) SuggestGrammar(ctx context.Context, language string, req engine.GrammarRequest) (engine.GrammarResponse, error) {
	w, ok := d.set.Grammar.Registry.Lookup(language)
	if !ok {
		return engine.GrammarResponse{}, noSuchLanguage(engine.Grammar, language)
	}
	resp, err := w.Suggest(ctx, req)
	if err != nil {
		return engine.GrammarResponse{}, wrapWorkerError(language, err)
	}
	return resp, nil
}

// SuggestHyphenation forwards req to the hyphenator for language.
func (d *Dispatcher) SuggestHyphenation(ctx context.Context, language string, req engine.HyphenationRequest) (engine.HyphenationResponse, error) {
	w, ok := d.set.Hyphenation.Lookup(language)
	if !ok {
		return engine.HyphenationResponse{}, noSuchLanguage(engine.Hyphenation, language)
	}
	resp, err := w.Suggest(ctx, req)
	if err != nil {
		return engine.HyphenationResponse{}, wrapWorkerError(language, err)
	}
	return resp, nil
}

// Preferences returns the grammar preferences for language, tolerating an
// absent entry as empty (spec.md §4.4) rather than NoSuchLanguage, unless
// the language has no grammar worker registered at all.
func (d *Dispatcher) Preferences(language string) (map[string]string, error) {
	if _, ok := d.set.Grammar.Registry.Lookup(language); !ok {
		return nil, noSuchLanguage(engine.Grammar, language)
	}
	prefs, ok := d.set.Grammar.Prefs.Get(language)
	if !ok {
		return map[string]string{}, nil
	}
	return prefs, nil
}

// Available enumerates the registries, decorating each language with a
// display title from the static language table. Per spec.md §9 Open
// Question a, a kind with zero loaded languages is omitted entirely rather
// than rendered as an empty object.
func (d *Dispatcher) Available() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, kind := range engine.AllKinds() {
		languages := d.set.Languages(kind)
		if len(languages) == 0 {
			continue
		}
		byLang := make(map[string]string, len(languages))
		for _, lang := range languages {
			byLang[lang] = langtable.Title(lang)
		}
		out[kind.JSONKey()] = byLang
	}
	return out
}

func wrapWorkerError(language string, err error) *DispatchError {
	var werr *engine.WorkerError
	if errors.As(err, &werr) {
		return &DispatchError{Kind: EngineFault, Language: language, Cause: werr}
	}
	return &DispatchError{Kind: EngineFault, Language: language, Cause: err}
}
