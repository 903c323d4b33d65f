package filesystem

import (
	"fmt"
	"sync"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/pathutil"
)

// Session holds one viewer's navigation state: the folder being browsed and
// the active search text. It follows the store's events so the current
// folder stays valid when it (or an ancestor) is renamed, moved or deleted.
//
// Close the session when done so it stops receiving events.
type Session struct {
	fs      *FileSystem
	subID   uint64
	mu      sync.RWMutex // Protects the fields below
	current string
	search  string
}

// NewSession starts a session at the root of fs
func (fs *FileSystem) NewSession() *Session {
	s := &Session{fs: fs, current: pathutil.Root}
	s.subID = fs.Subscribe(s)
	return s
}

// Close detaches the session from the store
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.fs.Unsubscribe(s.subID)
}

// CurrentPath is the folder being browsed
func (s *Session) CurrentPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Search is the active search text
func (s *Session) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// AtRoot reports whether the session is browsing the root
func (s *Session) AtRoot() bool {
	return s.CurrentPath() == pathutil.Root
}

// Navigate opens the folder at p. The root is always valid; any other path
// must name an existing folder.
func (s *Session) Navigate(p string) error {
	p = pathutil.Clean(p)
	if p != pathutil.Root {
		rec, ok := s.fs.LookupPath(p)
		if !ok {
			return fileflow.NewNotFoundError(fmt.Sprintf("no folder at %s", p), nil)
		}
		switch rec.Kind {
		case fileflow.KindFolder:
		case fileflow.KindFile:
			return fileflow.NewValidationError(fmt.Sprintf("%q is a file, not a folder", rec.Name), nil)
		default:
			return fileflow.NewValidationError(fmt.Sprintf("unknown kind %s", rec.Kind), nil)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	return nil
}

// Open navigates into the folder with the given id
func (s *Session) Open(id string) error {
	rec, ok := s.fs.Get(id)
	if !ok {
		return fileflow.NewNotFoundError(fmt.Sprintf("no record with id %q", id), nil)
	}
	return s.Navigate(rec.Path)
}

// Back goes to the parent folder; at the root it stays put
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = pathutil.Dirname(s.current)
}

// Home returns to the root
func (s *Session) Home() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = pathutil.Root
}

// SetSearch replaces the search text
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = text
}

// Entries lists the current folder filtered by the search text
func (s *Session) Entries() []fileflow.Record {
	s.mu.RLock()
	cur, search := s.current, s.search
	s.mu.RUnlock()
	return s.fs.List(cur, search)
}

// CreateHere creates a record in the current folder
func (s *Session) CreateHere(name string, kind fileflow.Kind) (fileflow.Record, error) {
	return s.fs.Create(s.CurrentPath(), name, kind)
}

// MoveTarget is the destination a move dialog starts with
func (s *Session) MoveTarget() string {
	return s.CurrentPath()
}

// OnEvent keeps the current folder pointing at the same folder after it or
// an ancestor was renamed or moved, and climbs out of deleted folders.
func (s *Session) OnEvent(ev fileflow.Event) {
	if !ev.Record.IsFolder() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Op {
	case fileflow.OpRename, fileflow.OpMove:
		if s.current == ev.OldPath || pathutil.IsDescendant(s.current, ev.OldPath) {
			s.current = pathutil.Rebase(s.current, ev.OldPath, ev.Record.Path)
		}
	case fileflow.OpDelete:
		gone := ev.Record.Path
		if s.current == gone || pathutil.IsDescendant(s.current, gone) {
			s.current = pathutil.Dirname(gone)
		}
	case fileflow.OpCreate, fileflow.OpSeed:
	}
}
