package tree

import (
	"slices"
	"strings"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/pathutil"
	"golang.org/x/text/collate"
)

// ListChildren returns the records directly under currentPath whose name
// contains search (case-insensitive). Folders come before files, then names
// are ordered by the configured locale. Ties keep snapshot order so repeated
// calls on the same snapshot return identical results.
func ListChildren(s Snapshot, currentPath, search string, fns ...OptionFunc) []fileflow.Record {
	opts := applyOptions(fns)

	cur := pathutil.Clean(currentPath)
	needle := strings.ToLower(search)

	out := make([]fileflow.Record, 0)
	for _, rec := range s {
		if !inDir(rec, cur) {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Name), needle) {
			continue
		}
		out = append(out, rec)
	}

	// Collator keeps internal buffers and is not safe for concurrent use
	col := collate.New(opts.Locale)
	slices.SortStableFunc(out, func(a, b fileflow.Record) int {
		if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
			return ra - rb
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

func inDir(rec fileflow.Record, dir string) bool {
	if dir == pathutil.Root && rec.Path == pathutil.Root {
		return true
	}
	return pathutil.Dirname(rec.Path) == dir
}

func kindRank(k fileflow.Kind) int {
	switch k {
	case fileflow.KindFolder:
		return 0
	case fileflow.KindFile:
		return 1
	default:
		return 2
	}
}

// Glyph returns the icon shown next to a record in a listing
func Glyph(rec fileflow.Record) string {
	switch rec.Kind {
	case fileflow.KindFolder:
		return "📁"
	case fileflow.KindFile:
		switch pathutil.Extname(rec.Name) {
		case ".pdf":
			return "📄"
		case ".jpg", ".jpeg", ".png", ".gif":
			return "🖼️"
		case ".txt":
			return "📝"
		}
	}
	return "❓"
}
