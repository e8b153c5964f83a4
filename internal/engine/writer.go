package engine

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// PathData is one pending output file.
type PathData struct {
	Path     string
	Language string
	Content  []byte
}

// writePathData writes every pending file, creating parent directories as
// needed. Writes are atomic (temp file + rename) so a crashed run never
// leaves a half-written catalog or page. In dry-run mode the writes are only
// logged.
func (e *Engine) writePathData(data []PathData) ([]string, error) {
	written := make([]string, 0, len(data))
	for _, d := range data {
		slog.Debug("Writing output", "path", d.Path, "language", d.Language, "bytes", len(d.Content))

		if e.dryRun {
			continue
		}

		// An output that already holds the wanted bytes is left alone, so
		// watch mode does not retrigger on its own writes.
		if prev, err := os.ReadFile(d.Path); err == nil && bytes.Equal(prev, d.Content) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(d.Path), 0o750); err != nil {
			return written, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", d.Path)
		}
		if err := renameio.WriteFile(d.Path, d.Content, 0o644); err != nil {
			return written, gserrors.WrapError(err, gserrors.CategoryFileSystem, "failed to write output file").
				WithContext("path", d.Path)
		}
		written = append(written, d.Path)
	}
	return written, nil
}

// underDir reports whether path is inside dir (both absolute).
func underDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
