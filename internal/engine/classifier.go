package engine

import (
	"os"
	"path/filepath"
	"strings"
)

// DataFile is the triple (kind, language, absolute path) produced by the
// classifier (spec.md §3, DataFile).
type DataFile struct {
	Kind     Kind
	Language string
	Path     string
}

// Classify maps a filesystem path to a DataFile, or reports false when the
// path should be rejected. It performs no I/O beyond a single stat call
// (spec.md §4.1).
//
// Rejected: directories, symlinks to missing targets, files whose stem is
// empty, and files whose lowercased extension does not match any kind.
func Classify(path string) (DataFile, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return DataFile{}, false
	}
	if info.IsDir() {
		return DataFile{}, false
	}

	base := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || ext == "" {
		return DataFile{}, false
	}

	kind, ok := extensions[ext]
	if !ok {
		return DataFile{}, false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return DataFile{Kind: kind, Language: stem, Path: abs}, true
}

// ClassifyRemoved maps a path to the (kind, language) it would have
// classified as, without stating it — the file is already gone by the time
// a Remove event is handled, so Classify's stat would always reject it.
func ClassifyRemoved(path string) (kind Kind, language string, ok bool) {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || ext == "" {
		return "", "", false
	}
	kind, ok = extensions[ext]
	if !ok {
		return "", "", false
	}
	return kind, stem, true
}
