package nativeengine

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/oxhq/langserved/internal/engine"
)

// GrammarEngine is the default stand-in for a real zcheck grammar checker.
// Its data file carries both the rule set it checks text against and the
// static preferences spec.md §4.4 requires a grammar kind to expose, so a
// single open yields both — the shape callers (Bootstrap, Watcher) need to
// fill engine.GrammarBuild.
//
// Line formats, blank and "#"-prefixed lines ignored:
//
//	pref\t<id>\t<label>
//	rule\t<substring>\t<error_code>\t<title>\t<description>\t<suggestion>[|<suggestion>...]
//
// Serve scans the rule set in file order and flags every non-overlapping
// occurrence of each rule's trigger substring.
type GrammarEngine struct {
	prefs map[string]string
	rules []grammarRule
}

type grammarRule struct {
	trigger     string
	errorCode   string
	title       string
	description string
	suggestions []engine.GrammarSuggestion
}

// OpenGrammar parses path and returns the engine. Callers that also need the
// static preferences should use OpenGrammarWithPreferences, which hands back
// the same instance's Preferences() without a second file read.
func OpenGrammar(path string) (engine.Engine[engine.GrammarRequest, engine.GrammarResponse], error) {
	return openGrammarFile(path)
}

// OpenGrammarWithPreferences opens path once and returns both the engine and
// its static preferences, matching engine.GrammarBuild's contract.
func OpenGrammarWithPreferences(path string) (*GrammarEngine, map[string]string, error) {
	g, err := openGrammarFile(path)
	if err != nil {
		return nil, nil, err
	}
	return g, g.Preferences(), nil
}

func openGrammarFile(path string) (*GrammarEngine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g := &GrammarEngine{prefs: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "pref":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%s:%d: expected pref\\tid\\tlabel", path, lineNo)
			}
			g.prefs[fields[1]] = fields[2]
		case "rule":
			if len(fields) != 6 {
				return nil, fmt.Errorf("%s:%d: expected rule\\ttrigger\\tcode\\ttitle\\tdescription\\tsuggestions", path, lineNo)
			}
			var suggestions []engine.GrammarSuggestion
			for _, s := range strings.Split(fields[5], "|") {
				if s == "" {
					continue
				}
				suggestions = append(suggestions, engine.GrammarSuggestion{Value: s})
			}
			g.rules = append(g.rules, grammarRule{
				trigger:     fields[1],
				errorCode:   fields[2],
				title:       fields[3],
				description: fields[4],
				suggestions: suggestions,
			})
		default:
			return nil, fmt.Errorf("%s:%d: unknown record kind %q", path, lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

// Preferences returns the static preference id -> label map parsed from the
// data file.
func (e *GrammarEngine) Preferences() map[string]string {
	out := make(map[string]string, len(e.prefs))
	for k, v := range e.prefs {
		out[k] = v
	}
	return out
}

func (e *GrammarEngine) Serve(req engine.GrammarRequest) (engine.GrammarResponse, error) {
	var errs []engine.GrammarError
	for _, rule := range e.rules {
		if rule.trigger == "" {
			continue
		}
		start := 0
		for {
			idx := strings.Index(req.Text[start:], rule.trigger)
			if idx < 0 {
				break
			}
			from := start + idx
			to := from + len(rule.trigger)
			errs = append(errs, engine.GrammarError{
				ErrorText:   req.Text[from:to],
				StartIndex:  from,
				EndIndex:    to,
				ErrorCode:   rule.errorCode,
				Description: rule.description,
				Title:       rule.title,
				Suggestions: rule.suggestions,
			})
			start = to
		}
	}
	return engine.GrammarResponse{Text: req.Text, Errs: errs}, nil
}

func (e *GrammarEngine) Close() error { return nil }
