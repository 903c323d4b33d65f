// Package tree implements the record tree as pure functions over an immutable
// [Snapshot]. Every mutation returns a new snapshot and leaves its input
// untouched; on error the input snapshot is returned as-is.
package tree

import (
	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/pathutil"
)

// Snapshot is an ordered, immutable list of records. Callers must treat it as
// read-only; use [Snapshot.Clone] before modifying a copy.
type Snapshot []fileflow.Record

// Clone returns a shallow copy. Content strings are immutable so sharing the
// pointers is fine.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Find returns the record with the given id and its index
func (s Snapshot) Find(id string) (fileflow.Record, int, bool) {
	for i, rec := range s {
		if rec.ID == id {
			return rec, i, true
		}
	}
	return fileflow.Record{}, -1, false
}

// FindPath returns the first record stored at path
func (s Snapshot) FindPath(p string) (fileflow.Record, bool) {
	p = pathutil.Clean(p)
	for _, rec := range s {
		if rec.Path == p {
			return rec, true
		}
	}
	return fileflow.Record{}, false
}

// Descendants returns every record below the folder at dirPath, in snapshot order
func (s Snapshot) Descendants(dirPath string) []fileflow.Record {
	var out []fileflow.Record
	for _, rec := range s {
		if pathutil.IsDescendant(rec.Path, dirPath) {
			out = append(out, rec)
		}
	}
	return out
}

// Records exposes the snapshot as a plain slice copy for consumers outside
// this package
func (s Snapshot) Records() []fileflow.Record {
	return []fileflow.Record(s.Clone())
}
