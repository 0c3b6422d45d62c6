package dispatch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/dispatch"
	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
)

func loadFixture(t *testing.T, set *registries.Set, kind engine.Kind, lang, contents string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, lang+"."+kind.Extension())
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	df, ok := engine.Classify(path)
	require.True(t, ok)
	require.NoError(t, set.Load(df))
}

func TestDispatcher_SuggestSpelling(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())
	loadFixture(t, set, engine.Spelling, "se", "oainá\t0\toaidná:18.4326171875\npáhkat\t1\tdahkat:14.0126953125\n")
	defer set.Remove(engine.Spelling, "se")

	d := dispatch.New(set)
	resp, err := d.SuggestSpelling(context.Background(), "se", engine.SpellerRequest{Text: "oainá páhkat"})
	require.NoError(t, err)
	require.Equal(t, "oainá páhkat", resp.Text)
	require.Len(t, resp.Results, 2)
	require.False(t, resp.Results[0].IsCorrect)
	require.Equal(t, "oaidná", resp.Results[0].Suggestions[0].Value)
	require.Equal(t, 18.4326171875, resp.Results[0].Suggestions[0].Weight)
	require.True(t, resp.Results[1].IsCorrect)
}

func TestDispatcher_SuggestSpelling_UnknownLanguage(t *testing.T) {
	set := registries.New(4, zap.NewNop())
	d := dispatch.New(set)

	_, err := d.SuggestSpelling(context.Background(), "xx", engine.SpellerRequest{Text: "hello"})
	require.Error(t, err)

	var derr *dispatch.DispatchError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, dispatch.NoSuchLanguage, derr.Kind)
	require.Equal(t, "No speller available for language xx", derr.Error())
}

func TestDispatcher_Preferences(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())
	loadFixture(t, set, engine.Grammar, "se", "pref\ttypos\tFlag typos\nrule\tsup\ttypo\tTitle\tDesc\tfix\n")
	defer set.Remove(engine.Grammar, "se")

	d := dispatch.New(set)
	prefs, err := d.Preferences("se")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"typos": "Flag typos"}, prefs)

	_, err = d.Preferences("xx")
	require.Error(t, err)
}

func TestDispatcher_Available_OmitsEmptyKinds(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())
	loadFixture(t, set, engine.Spelling, "se", "oainá\t0\n")
	defer set.Remove(engine.Spelling, "se")

	d := dispatch.New(set)
	available := d.Available()

	require.Contains(t, available, "speller")
	require.NotContains(t, available, "grammar")
	require.NotContains(t, available, "hyphenation")
	require.Equal(t, "North Sami", available["speller"]["se"])
}

func TestDispatcher_EngineFaultDoesNotTakeWorkerDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())
	opener := func(string) (engine.Engine[engine.SpellerRequest, engine.SpellerResponse], error) {
		return faultySpeller{}, nil
	}
	require.NoError(t, set.Spelling.Upsert("se", func() (*engine.Worker[engine.SpellerRequest, engine.SpellerResponse], error) {
		return engine.Open[engine.SpellerRequest, engine.SpellerResponse](engine.Spelling, "se", "faulty-path", opener, 4, zap.NewNop())
	}))
	defer set.Remove(engine.Spelling, "se")

	d := dispatch.New(set)
	_, err := d.SuggestSpelling(context.Background(), "se", engine.SpellerRequest{Text: "fail"})
	require.Error(t, err)
	var derr *dispatch.DispatchError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, dispatch.EngineFault, derr.Kind)

	resp, err := d.SuggestSpelling(context.Background(), "se", engine.SpellerRequest{Text: "ok"})
	require.NoError(t, err)
	require.True(t, resp.Results[0].IsCorrect)

	resp2, err := d.SuggestSpelling(context.Background(), "se", engine.SpellerRequest{Text: "ok"})
	require.NoError(t, err)
	require.True(t, resp2.Results[0].IsCorrect)
}

// faultySpeller fails every request whose text is "fail" and reports every
// other text as one correct word.
type faultySpeller struct{}

func (faultySpeller) Serve(req engine.SpellerRequest) (engine.SpellerResponse, error) {
	if req.Text == "fail" {
		return engine.SpellerResponse{}, errors.New("native failure")
	}
	return engine.SpellerResponse{Text: req.Text, Results: []engine.SpellerWordResult{{Word: req.Text, IsCorrect: true}}}, nil
}

func (faultySpeller) Close() error { return nil }
