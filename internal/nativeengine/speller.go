package nativeengine

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oxhq/langserved/internal/engine"
)

// SpellerEngine is the default, pure-Go stand-in for a real zhfst speller
// archive. Its data file is a tab-separated word list rather than a real
// finite-state transducer; every kind's Opener is swappable, so a build that
// links a real speller library can replace OpenSpeller without touching the
// registry, worker, or dispatch layers.
//
// Line format: "<word>\t<0|1>\t<suggestion>:<weight>[,<suggestion>:<weight>...]"
// A blank line or one starting with "#" is ignored.
type SpellerEngine struct {
	words map[string]spellerEntry
}

type spellerEntry struct {
	correct     bool
	suggestions []engine.SpellerSuggestion
}

// OpenSpeller implements engine.Opener[engine.SpellerRequest, engine.SpellerResponse].
func OpenSpeller(path string) (engine.Engine[engine.SpellerRequest, engine.SpellerResponse], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string]spellerEntry)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected at least word\\tcorrect", path, lineNo)
		}
		correct := fields[1] == "1"
		var suggestions []engine.SpellerSuggestion
		if len(fields) >= 3 && fields[2] != "" {
			suggestions, err = parseSpellerSuggestions(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		}
		words[fields[0]] = spellerEntry{correct: correct, suggestions: suggestions}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &SpellerEngine{words: words}, nil
}

func parseSpellerSuggestions(field string) ([]engine.SpellerSuggestion, error) {
	parts := strings.Split(field, ",")
	out := make([]engine.SpellerSuggestion, 0, len(parts))
	for _, part := range parts {
		value, weightStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("malformed suggestion %q, want value:weight", part)
		}
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed suggestion weight %q: %w", part, err)
		}
		out = append(out, engine.SpellerSuggestion{Value: value, Weight: weight})
	}
	return out, nil
}

// Serve checks every whitespace-separated token in req.Text against the word
// list. Tokens absent from the list are reported incorrect with no
// suggestions, rather than erroring the whole request.
func (e *SpellerEngine) Serve(req engine.SpellerRequest) (engine.SpellerResponse, error) {
	tokens := strings.Fields(req.Text)
	results := make([]engine.SpellerWordResult, 0, len(tokens))
	for _, word := range tokens {
		entry, known := e.words[word]
		if !known {
			results = append(results, engine.SpellerWordResult{Word: word, IsCorrect: false})
			continue
		}
		results = append(results, engine.SpellerWordResult{
			Word:        word,
			IsCorrect:   entry.correct,
			Suggestions: entry.suggestions,
		})
	}
	return engine.SpellerResponse{Text: req.Text, Results: results}, nil
}

func (e *SpellerEngine) Close() error { return nil }
