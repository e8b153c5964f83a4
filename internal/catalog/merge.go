package catalog

import (
	gserrors "git.home.luguber.info/inful/gosetta/internal/errors"
)

// CarryForward copies translator-provided values from one existing catalog
// into freshly extracted per-template catalogs. Callers apply it once per
// existing catalog file, so disagreements between files surface.
//
// keyPaths maps each span key to the templates it appears in. For every key
// the old catalog has a non-empty translated value for, that value is carried
// into each fresh catalog. If a fresh catalog already holds a different
// non-empty value for the key (carried from an earlier file), the
// disagreement is a fatal mismatch: two sources claim different translations
// for the same original text.
//
// Fresh metadata (comments, classes, literals) always wins over the old
// entry's, so re-running generate picks up edited translator comments.
func CarryForward(fresh map[string]Catalog, keyPaths map[string][]string, old Catalog) error {
	for key, paths := range keyPaths {
		oldEntry, ok := old[key]
		if !ok || oldEntry.Translated == "" {
			continue
		}

		for _, path := range paths {
			current, ok := fresh[path][key]
			if !ok {
				continue
			}
			if current.Translated != "" && current.Translated != oldEntry.Translated {
				return gserrors.TranslationMismatch(key).
					WithContext("template", path)
			}
			current.Translated = oldEntry.Translated
			fresh[path][key] = current
		}
	}
	return nil
}
