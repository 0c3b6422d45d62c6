package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/langserved/internal/engine"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestClassify_RecognizesEachExtension(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		file string
		kind engine.Kind
		lang string
	}{
		{"se.zhfst", engine.Spelling, "se"},
		{"se.zcheck", engine.Grammar, "se"},
		{"se.zhyph", engine.Hyphenation, "se"},
	}

	for _, c := range cases {
		path := filepath.Join(dir, c.file)
		touch(t, path)

		df, ok := engine.Classify(path)
		require.True(t, ok, c.file)
		require.Equal(t, c.kind, df.Kind)
		require.Equal(t, c.lang, df.Language)
		require.True(t, filepath.IsAbs(df.Path))
	}
}

func TestClassify_RejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "se.txt")
	touch(t, path)

	_, ok := engine.Classify(path)
	require.False(t, ok)
}

func TestClassify_RejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "se.zhfst")
	require.NoError(t, os.Mkdir(sub, 0o755))

	_, ok := engine.Classify(sub)
	require.False(t, ok)
}

func TestClassify_RejectsMissingFile(t *testing.T) {
	_, ok := engine.Classify(filepath.Join(t.TempDir(), "missing.zhfst"))
	require.False(t, ok)
}

func TestClassify_IsCaseInsensitiveOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "se.ZHFST")
	touch(t, path)

	df, ok := engine.Classify(path)
	require.True(t, ok)
	require.Equal(t, engine.Spelling, df.Kind)
}

func TestClassifyRemoved_DoesNotRequireFileToExist(t *testing.T) {
	kind, lang, ok := engine.ClassifyRemoved("/data/grammar/smj.zcheck")
	require.True(t, ok)
	require.Equal(t, engine.Grammar, kind)
	require.Equal(t, "smj", lang)
}

func TestClassifyRemoved_RejectsUnknownExtension(t *testing.T) {
	_, _, ok := engine.ClassifyRemoved("/data/grammar/smj.txt")
	require.False(t, ok)
}

func TestKind_NounIsUnifiedAcrossKinds(t *testing.T) {
	require.Equal(t, "speller", engine.Spelling.Noun())
	require.Equal(t, "grammar checker", engine.Grammar.Noun())
	require.Equal(t, "hyphenator", engine.Hyphenation.Noun())
}
