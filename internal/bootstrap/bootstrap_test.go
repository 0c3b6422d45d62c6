package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/bootstrap"
	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
)

func writeFixtureFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestRun_PopulatesAllRegistries(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "spelling", "se.zhfst"), "oainá\t0\toaidná:18.43\n")
	writeFixtureFile(t, filepath.Join(root, "grammar", "se.zcheck"), "rule\tsup\ttypo\tTitle\tDesc\tfix\n")
	writeFixtureFile(t, filepath.Join(root, "hyphenation", "se.zhyph"), "bådnjåt\tbådn-jåt\n")
	writeFixtureFile(t, filepath.Join(root, "spelling", "ignored.txt"), "not a data file\n")

	set := registries.New(4, zap.NewNop())
	require.NoError(t, bootstrap.Run(root, set, zap.NewNop()))

	_, ok := set.Spelling.Lookup("se")
	require.True(t, ok)
	_, ok = set.Grammar.Registry.Lookup("se")
	require.True(t, ok)
	_, ok = set.Hyphenation.Lookup("se")
	require.True(t, ok)

	require.ElementsMatch(t, []string{"se"}, set.Languages(engine.Spelling))

	shutdown(set)
}

func TestRun_PerFileFailureDoesNotAbortScan(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "spelling", "broken.zhfst"), "onlyoneword\n")
	writeFixtureFile(t, filepath.Join(root, "spelling", "se.zhfst"), "oainá\t0\n")

	set := registries.New(4, zap.NewNop())
	require.NoError(t, bootstrap.Run(root, set, zap.NewNop()))

	_, ok := set.Spelling.Lookup("se")
	require.True(t, ok)
	_, ok = set.Spelling.Lookup("broken")
	require.False(t, ok)

	shutdown(set)
}

func TestRun_MissingKindDirectoryIsTolerated(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := t.TempDir()
	writeFixtureFile(t, filepath.Join(root, "spelling", "se.zhfst"), "oainá\t0\n")
	// grammar/ and hyphenation/ intentionally absent.

	set := registries.New(4, zap.NewNop())
	require.NoError(t, bootstrap.Run(root, set, zap.NewNop()))

	require.Equal(t, 0, set.Grammar.Registry.Count())
	require.Equal(t, 0, set.Hyphenation.Count())

	shutdown(set)
}

func shutdown(set *registries.Set) {
	for _, lang := range set.Spelling.Languages() {
		set.Remove(engine.Spelling, lang)
	}
	for _, lang := range set.Grammar.Registry.Languages() {
		set.Remove(engine.Grammar, lang)
	}
	for _, lang := range set.Hyphenation.Languages() {
		set.Remove(engine.Hyphenation, lang)
	}
}
