package engine

// The types below are the per-kind request/response wire contracts spec.md
// §4.2 assigns to each engine kind. They live here, rather than alongside
// the native-engine implementations, so that both engine (the generic
// registry/worker machinery) and nativeengine (the concrete opaque-factory
// implementations) can refer to them without an import cycle.

// --- Spelling ---------------------------------------------------------------

type SpellerRequest struct {
	Text string `json:"text"`
}

type SpellerSuggestion struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

type SpellerWordResult struct {
	Word        string              `json:"word"`
	IsCorrect   bool                `json:"is_correct"`
	Suggestions []SpellerSuggestion `json:"suggestions"`
}

type SpellerResponse struct {
	Text    string              `json:"text"`
	Results []SpellerWordResult `json:"results"`
}

// --- Grammar -----------------------------------------------------------------

type GrammarRequest struct {
	Text string `json:"text"`
}

type GrammarSuggestion struct {
	Value string `json:"value"`
}

type GrammarError struct {
	ErrorText   string              `json:"error_text"`
	StartIndex  int                 `json:"start_index"`
	EndIndex    int                 `json:"end_index"`
	ErrorCode   string              `json:"error_code"`
	Description string              `json:"description"`
	Title       string              `json:"title"`
	Suggestions []GrammarSuggestion `json:"suggestions"`
}

type GrammarResponse struct {
	Text string         `json:"text"`
	Errs []GrammarError `json:"errs"`
}

// --- Hyphenation ---------------------------------------------------------------

type HyphenationRequest struct {
	Text string `json:"text"`
}

type HyphenationWordResult struct {
	Word  string   `json:"word"`
	Parts []string `json:"parts"`
}

type HyphenationResponse struct {
	Text    string                  `json:"text"`
	Results []HyphenationWordResult `json:"results"`
}
