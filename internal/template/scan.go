package template

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
	"git.home.luguber.info/inful/gosetta/internal/util/sets"
)

// IsHTML reports whether a template should go through HTML span extraction.
func IsHTML(path string) bool {
	switch filepath.Ext(path) {
	case ".html", ".htm":
		return true
	}
	return false
}

// ResolvePaths expands the CLI's template arguments into a sorted list of
// absolute file paths. Directories are walked recursively, duplicates are
// collapsed, and an empty result is an error.
func ResolvePaths(args []string) ([]string, error) {
	found := sets.New[string]()

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, gserrors.Wrap(err, gserrors.CategoryTemplate, gserrors.SeverityFatal, "template path does not exist").
				WithContext("path", arg)
		}

		if !info.IsDir() {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to resolve path")
			}
			found.Add(abs)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			found.Add(abs)
			return nil
		})
		if err != nil {
			return nil, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to walk template directory").
				WithContext("path", arg)
		}
	}

	if len(found) == 0 {
		return nil, gserrors.NoTemplates()
	}

	paths := found.Values()
	sort.Strings(paths)
	return paths, nil
}
