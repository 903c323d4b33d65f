package mount

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/internal/util"
	"github.com/brettbedarf/fileflow/pathutil"
)

const (
	dirMode  = 0o555
	fileMode = 0o444
)

// dirNode exposes one folder of the tree. Children are resolved by path on
// every call so the view tracks the live store.
type dirNode struct {
	fs.Inode
	reader fileflow.TreeReader
	path   string
}

var (
	_ fs.NodeReaddirer = (*dirNode)(nil)
	_ fs.NodeLookuper  = (*dirNode)(nil)
	_ fs.NodeGetattrer = (*dirNode)(nil)
)

func newRoot(reader fileflow.TreeReader) *dirNode {
	return &dirNode{reader: reader, path: pathutil.Root}
}

func (d *dirNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFDIR | dirMode
	return fs.OK
}

func (d *dirNode) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	return fs.NewListDirStream(dirEntries(d.reader.List(d.path, ""))), fs.OK
}

func (d *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	logger := util.GetLogger("Mount.Lookup")
	rec, ok := d.reader.LookupPath(pathutil.Join(d.path, name))
	if !ok {
		logger.Trace().Str("dir", d.path).Str("name", name).Msg("Entry not found")
		return nil, syscall.ENOENT
	}

	switch rec.Kind {
	case fileflow.KindFolder:
		out.Mode = fuse.S_IFDIR | dirMode
		child := &dirNode{reader: d.reader, path: rec.Path}
		return d.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFDIR}), fs.OK
	case fileflow.KindFile:
		data := fileData(rec)
		out.Mode = fuse.S_IFREG | fileMode
		out.Size = uint64(len(data))
		child := &fs.MemRegularFile{
			Data: data,
			Attr: fuse.Attr{Mode: fileMode},
		}
		return d.NewInode(ctx, child, fs.StableAttr{Mode: fuse.S_IFREG}), fs.OK
	default:
		logger.Warn().Str("path", rec.Path).Stringer("kind", rec.Kind).Msg("Record has unknown kind")
		return nil, syscall.EIO
	}
}

func dirEntries(recs []fileflow.Record) []fuse.DirEntry {
	entries := make([]fuse.DirEntry, 0, len(recs))
	for _, rec := range recs {
		var mode uint32
		switch rec.Kind {
		case fileflow.KindFolder:
			mode = fuse.S_IFDIR
		case fileflow.KindFile:
			mode = fuse.S_IFREG
		default:
			continue
		}
		entries = append(entries, fuse.DirEntry{Name: rec.Name, Mode: mode})
	}
	return entries
}

// fileData is the content served for a file; files without content read as empty
func fileData(rec fileflow.Record) []byte {
	if !rec.HasContent() {
		return nil
	}
	return []byte(*rec.Content)
}
