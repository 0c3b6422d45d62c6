package registries_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
)

func classifyFixture(t *testing.T, lang string, kind engine.Kind, contents string) engine.DataFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), lang+"."+kind.Extension())
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	df, ok := engine.Classify(path)
	require.True(t, ok)
	return df
}

func TestSet_LoadEachKind(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())

	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Spelling, "oainá\t0\n")))
	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Grammar, "pref\ttypos\tFlag typos\n")))
	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Hyphenation, "bådnjåt\tbådn-jåt\n")))

	require.ElementsMatch(t, []string{"se"}, set.Languages(engine.Spelling))
	require.ElementsMatch(t, []string{"se"}, set.Languages(engine.Grammar))
	require.ElementsMatch(t, []string{"se"}, set.Languages(engine.Hyphenation))

	prefs, ok := set.Grammar.Prefs.Get("se")
	require.True(t, ok)
	require.Equal(t, map[string]string{"typos": "Flag typos"}, prefs)

	set.Remove(engine.Spelling, "se")
	set.Remove(engine.Grammar, "se")
	set.Remove(engine.Hyphenation, "se")

	require.Empty(t, set.Languages(engine.Spelling))
	require.Empty(t, set.Languages(engine.Grammar))
	require.Empty(t, set.Languages(engine.Hyphenation))
}

func TestSet_LoadReplacesExistingWorker(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())

	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Spelling, "first\t0\n")))
	first, _ := set.Spelling.Lookup("se")

	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Spelling, "second\t1\n")))
	second, _ := set.Spelling.Lookup("se")

	require.NotSame(t, first, second)

	set.Remove(engine.Spelling, "se")
}

func TestSet_LoadGrammarFailurePreservesPriorState(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := registries.New(4, zap.NewNop())
	require.NoError(t, set.Load(classifyFixture(t, "se", engine.Grammar, "pref\ttypos\tFlag typos\n")))

	badPath := filepath.Join(t.TempDir(), "se.zcheck")
	require.NoError(t, os.WriteFile(badPath, []byte("garbage\tnope\n"), 0o644))
	badDF, ok := engine.Classify(badPath)
	require.True(t, ok)

	require.Error(t, set.Load(badDF))

	_, ok = set.Grammar.Registry.Lookup("se")
	require.True(t, ok)
	prefs, ok := set.Grammar.Prefs.Get("se")
	require.True(t, ok)
	require.Equal(t, map[string]string{"typos": "Flag typos"}, prefs)

	set.Remove(engine.Grammar, "se")
}
