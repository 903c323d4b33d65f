package filesystem

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/config"
	"github.com/brettbedarf/fileflow/internal/util"
	"github.com/brettbedarf/fileflow/pathutil"
	"github.com/brettbedarf/fileflow/tree"
	"github.com/puzpuzpuz/xsync/v4"
)

// FileSystem is the record store. It holds the current immutable snapshot and
// replaces it wholesale after each mutation, so readers never observe a
// partially applied cascade.
type FileSystem struct {
	cfg       *config.Config
	opts      []tree.OptionFunc
	snap      atomic.Pointer[tree.Snapshot]
	mu        sync.Mutex                            // Serialises read-modify-swap of snap
	observers *xsync.Map[uint64, fileflow.Observer] // maps subscription IDs to observers
	lastObsID atomic.Uint64                         // Last subscription ID assigned
}

var _ fileflow.TreeOperator = (*FileSystem)(nil)

// NewFS creates an empty store. Extra options are applied after the ones
// derived from cfg.
func NewFS(cfg *config.Config, fns ...tree.OptionFunc) *FileSystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	opts := []tree.OptionFunc{
		tree.WithUniquePaths(cfg.UniquePaths),
		tree.WithLocale(cfg.LocaleTag()),
	}
	if cfg.DefaultFileContent == "" {
		opts = append(opts, tree.WithoutFileContent())
	} else {
		opts = append(opts, tree.WithFileContent(cfg.DefaultFileContent))
	}
	opts = append(opts, fns...)

	fs := &FileSystem{
		cfg:       cfg,
		opts:      opts,
		observers: xsync.NewMap[uint64, fileflow.Observer](),
	}
	empty := tree.Snapshot{}
	fs.snap.Store(&empty)
	return fs
}

// Config returns the configuration the store was created with
func (fs *FileSystem) Config() *config.Config {
	return fs.cfg
}

// Snapshot returns the current snapshot. It must be treated as read-only.
func (fs *FileSystem) Snapshot() tree.Snapshot {
	return *fs.snap.Load()
}

// Records returns a copy of every record in insertion order
func (fs *FileSystem) Records() []fileflow.Record {
	return fs.Snapshot().Records()
}

// Get returns the record with the given id
func (fs *FileSystem) Get(id string) (fileflow.Record, bool) {
	rec, _, ok := fs.Snapshot().Find(id)
	return rec, ok
}

// LookupPath returns the record at the given path
func (fs *FileSystem) LookupPath(p string) (fileflow.Record, bool) {
	return fs.Snapshot().FindPath(p)
}

// List returns the entries directly under dirPath matching search
func (fs *FileSystem) List(dirPath, search string) []fileflow.Record {
	return tree.ListChildren(fs.Snapshot(), dirPath, search, fs.opts...)
}

// Create adds a new file or folder named name under parentPath
func (fs *FileSystem) Create(parentPath, name string, kind fileflow.Kind) (fileflow.Record, error) {
	logger := util.GetLogger("FS.Create")

	var rec fileflow.Record
	next, err := fs.apply(func(s tree.Snapshot) (tree.Snapshot, error) {
		var (
			out tree.Snapshot
			err error
		)
		out, rec, err = tree.Create(s, parentPath, name, kind, fs.opts...)
		return out, err
	})
	if err != nil {
		logger.Debug().Err(err).Str("parent", parentPath).Str("name", name).Msg("Create rejected")
		return fileflow.Record{}, err
	}
	logger.Debug().Str("id", rec.ID).Str("path", rec.Path).Stringer("kind", rec.Kind).Msg("Created record")
	fs.publish(fileflow.Event{Op: fileflow.OpCreate, Record: rec, Records: next.Records()})
	return rec, nil
}

// Rename changes the name of the record with the given id, cascading the new
// path to descendants of a folder
func (fs *FileSystem) Rename(id, newName string) (fileflow.Record, error) {
	logger := util.GetLogger("FS.Rename")

	var rec, old fileflow.Record
	next, err := fs.apply(func(s tree.Snapshot) (tree.Snapshot, error) {
		var (
			out tree.Snapshot
			err error
		)
		old, _, _ = s.Find(id)
		out, rec, err = tree.Rename(s, id, newName, fs.opts...)
		return out, err
	})
	if err != nil {
		logger.Debug().Err(err).Str("id", id).Str("name", newName).Msg("Rename rejected")
		return fileflow.Record{}, err
	}
	logger.Debug().Str("id", id).Str("from", old.Path).Str("to", rec.Path).Msg("Renamed record")
	fs.publish(fileflow.Event{Op: fileflow.OpRename, Record: rec, OldPath: old.Path, Records: next.Records()})
	return rec, nil
}

// Move relocates the record with the given id under destination
func (fs *FileSystem) Move(id, destination string) (fileflow.Record, error) {
	logger := util.GetLogger("FS.Move")

	var rec, old fileflow.Record
	next, err := fs.apply(func(s tree.Snapshot) (tree.Snapshot, error) {
		var (
			out tree.Snapshot
			err error
		)
		old, _, _ = s.Find(id)
		out, rec, err = tree.Move(s, id, destination, fs.opts...)
		return out, err
	})
	if err != nil {
		logger.Debug().Err(err).Str("id", id).Str("destination", destination).Msg("Move rejected")
		return fileflow.Record{}, err
	}
	logger.Debug().Str("id", id).Str("from", old.Path).Str("to", rec.Path).Msg("Moved record")
	fs.publish(fileflow.Event{Op: fileflow.OpMove, Record: rec, OldPath: old.Path, Records: next.Records()})
	return rec, nil
}

// Delete removes the record with the given id and everything below it.
// The removed records are returned target first.
func (fs *FileSystem) Delete(id string) ([]fileflow.Record, error) {
	logger := util.GetLogger("FS.Delete")

	var removed []fileflow.Record
	next, err := fs.apply(func(s tree.Snapshot) (tree.Snapshot, error) {
		var (
			out tree.Snapshot
			err error
		)
		out, removed, err = tree.Delete(s, id)
		return out, err
	})
	if err != nil {
		logger.Debug().Err(err).Str("id", id).Msg("Delete rejected")
		return nil, err
	}
	logger.Debug().Str("id", id).Str("path", removed[0].Path).Int("removed", len(removed)).Msg("Deleted record")
	fs.publish(fileflow.Event{Op: fileflow.OpDelete, Record: removed[0], Removed: removed, Records: next.Records()})
	return removed, nil
}

// View returns the content of the file with the given id
func (fs *FileSystem) View(id string) (string, error) {
	rec, ok := fs.Get(id)
	if !ok {
		return "", fileflow.NewNotFoundError(fmt.Sprintf("no record with id %q", id), nil)
	}
	return tree.View(rec)
}

// AddNode adds a record described by a seed request. It will add any missing
// folders in the path and return the newly created leaf.
// If a file already exists at the requested path, or a file sits where an
// ancestor folder should be, it returns an error. An existing folder leaf is
// returned as-is, similar to `mkdir -p`.
func (fs *FileSystem) AddNode(req *fileflow.NodeRequest) (fileflow.Record, error) {
	logger := util.GetLogger("FS.AddNode")

	if !req.Type.Valid() {
		return fileflow.Record{}, fileflow.NewValidationError(fmt.Sprintf("unknown kind %s for %s", req.Type, req.Path), nil)
	}
	p := pathutil.Clean(req.Path)
	if p == pathutil.Root {
		return fileflow.Record{}, fileflow.NewInvalidPathError("cannot add the root", nil)
	}

	var (
		leaf    fileflow.Record
		created []fileflow.Record
		exists  bool
	)
	next, err := fs.apply(func(s tree.Snapshot) (tree.Snapshot, error) {
		var err error
		created = created[:0]

		// Traverse the path until we get to the leaf and make any missing
		// folders along the way
		parent := pathutil.Root
		for _, name := range strings.Split(strings.TrimPrefix(pathutil.Dirname(p), "/"), "/") {
			if name == "" {
				continue
			}
			cur := pathutil.Join(parent, name)
			if existing, ok := s.FindPath(cur); ok {
				if !existing.IsFolder() {
					return s, fileflow.NewInvalidPathError(fmt.Sprintf("%s is not a folder", cur), nil)
				}
			} else {
				var dir fileflow.Record
				s, dir, err = tree.Create(s, parent, name, fileflow.KindFolder, fs.opts...)
				if err != nil {
					return s, err
				}
				created = append(created, dir)
			}
			parent = cur
		}

		if existing, ok := s.FindPath(p); ok {
			if existing.IsFolder() && req.Type == fileflow.KindFolder {
				leaf, exists = existing, true
				return s, nil
			}
			return s, fileflow.NewAlreadyExistsError(fmt.Sprintf("%s already exists at path %s", existing.Kind, p))
		}

		opts := append([]tree.OptionFunc{}, fs.opts...)
		if req.UUID != "" {
			if _, _, taken := s.Find(req.UUID); taken {
				return s, fileflow.NewAlreadyExistsError(fmt.Sprintf("id %s already in use", req.UUID))
			}
			id := req.UUID
			opts = append(opts, tree.WithIDFunc(func() string { return id }))
		}
		if req.Content != nil {
			opts = append(opts, tree.WithFileContent(*req.Content))
		} else {
			opts = append(opts, tree.WithoutFileContent())
		}
		s, leaf, err = tree.Create(s, pathutil.Dirname(p), pathutil.Base(p), req.Type, opts...)
		return s, err
	})
	if err != nil {
		logger.Debug().Err(err).Str("path", req.Path).Msg("Failed to add node")
		return fileflow.Record{}, err
	}
	if len(created) > 0 {
		logger.Debug().Str("path", p).Msg(fmt.Sprintf("Created %d new folder(s)", len(created)))
	}
	if !exists {
		for _, dir := range created {
			fs.publish(fileflow.Event{Op: fileflow.OpSeed, Record: dir, Records: next.Records()})
		}
		fs.publish(fileflow.Event{Op: fileflow.OpSeed, Record: leaf, Records: next.Records()})
	}
	return leaf, nil
}

// Load adds every request, skipping the ones that fail. It returns the number
// of records now present for the requests and the first error seen.
func (fs *FileSystem) Load(reqs []*fileflow.NodeRequest) (int, error) {
	logger := util.GetLogger("FS.Load")

	var firstErr error
	added := 0
	for _, req := range reqs {
		if _, err := fs.AddNode(req); err != nil {
			logger.Warn().Err(err).Str("path", req.Path).Stringer("type", req.Type).Msg("Skipping node")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		added++
	}
	logger.Info().Int("added", added).Int("requested", len(reqs)).Msg("Loaded nodes")
	return added, firstErr
}

// Subscribe registers obs for every future mutation and returns the
// subscription ID to pass to Unsubscribe
func (fs *FileSystem) Subscribe(obs fileflow.Observer) uint64 {
	id := fs.lastObsID.Add(1)
	fs.observers.Store(id, obs)
	return id
}

// Unsubscribe removes a subscription; it reports whether it existed
func (fs *FileSystem) Unsubscribe(id uint64) bool {
	_, ok := fs.observers.LoadAndDelete(id)
	return ok
}

// apply runs fn against the current snapshot under the writer lock and stores
// the result only when fn succeeds
func (fs *FileSystem) apply(fn func(s tree.Snapshot) (tree.Snapshot, error)) (tree.Snapshot, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	cur := fs.Snapshot()
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	fs.snap.Store(&next)
	return next, nil
}

// publish delivers ev to every observer outside the writer lock
func (fs *FileSystem) publish(ev fileflow.Event) {
	fs.observers.Range(func(_ uint64, obs fileflow.Observer) bool {
		obs.OnEvent(ev)
		return true
	})
}
