package nativeengine

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/oxhq/langserved/internal/engine"
)

// HyphenationEngine is the default stand-in for a real hyphenation library.
// Its data file is a dictionary of known words and their pre-computed part
// breaks; words absent from the dictionary fall back to a naive two-rune
// split, so every request still gets a response rather than an error.
//
// Line format: "<word>\t<part>-<part>[-<part>...]". Blank and
// "#"-prefixed lines are ignored.
type HyphenationEngine struct {
	words map[string][]string
}

// OpenHyphenation implements engine.Opener[engine.HyphenationRequest, engine.HyphenationResponse].
func OpenHyphenation(path string) (engine.Engine[engine.HyphenationRequest, engine.HyphenationResponse], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make(map[string][]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, parts, ok := strings.Cut(line, "\t")
		if !ok || parts == "" {
			return nil, fmt.Errorf("%s:%d: expected word\\tpart-part...", path, lineNo)
		}
		words[word] = strings.Split(parts, "-")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &HyphenationEngine{words: words}, nil
}

func (e *HyphenationEngine) Serve(req engine.HyphenationRequest) (engine.HyphenationResponse, error) {
	tokens := strings.Fields(req.Text)
	results := make([]engine.HyphenationWordResult, 0, len(tokens))
	for _, word := range tokens {
		if parts, known := e.words[word]; known {
			results = append(results, engine.HyphenationWordResult{Word: word, Parts: parts})
			continue
		}
		results = append(results, engine.HyphenationWordResult{Word: word, Parts: naiveSplit(word)})
	}
	return engine.HyphenationResponse{Text: req.Text, Results: results}, nil
}

func (e *HyphenationEngine) Close() error { return nil }

// naiveSplit breaks a word into two-rune parts; it is a placeholder for real
// hyphenation rules and exists only so unknown words still produce a result.
func naiveSplit(word string) []string {
	runes := []rune(word)
	if len(runes) <= 2 {
		return []string{word}
	}
	var parts []string
	for i := 0; i < len(runes); i += 2 {
		end := i + 2
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[i:end]))
	}
	return parts
}
