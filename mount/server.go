// Package mount serves a fileflow tree as a read-only FUSE filesystem.
package mount

import (
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/config"
	"github.com/brettbedarf/fileflow/internal/util"
)

// Server mounts a tree and owns the underlying FUSE server
type Server struct {
	reader fileflow.TreeReader
	cfg    *config.Config
	server *fuse.Server
}

// New creates a Server for reader. A nil cfg uses the defaults.
func New(reader fileflow.TreeReader, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Server{reader: reader, cfg: cfg}
}

// Serve mounts the tree at mountPoint and returns once the kernel has
// acknowledged the mount.
func (s *Server) Serve(mountPoint string) error {
	logger := util.GetLogger("Mount.Serve")
	srv, err := fs.Mount(mountPoint, newRoot(s.reader), mountOptions(s.cfg))
	if err != nil {
		return err
	}
	s.server = srv
	logger.Info().Str("mountpoint", mountPoint).Msg("Tree mounted")
	return nil
}

// ServeAsync runs Serve in the background and reports its result on the
// returned channel.
func (s *Server) ServeAsync(mountPoint string) <-chan error {
	done := make(chan error, 1)

	go func() {
		done <- s.Serve(mountPoint)
		close(done)
	}()

	return done
}

// Wait blocks until the filesystem is unmounted
func (s *Server) Wait() {
	if s.server == nil {
		return
	}
	s.server.Wait()
}

// Unmount cleanly unmounts the filesystem.
func (s *Server) Unmount() error {
	if s.server == nil {
		return nil
	}
	return s.server.Unmount()
}

func mountOptions(cfg *config.Config) *fs.Options {
	attr := seconds(cfg.AttrTimeout)
	entry := seconds(cfg.EntryTimeout)
	return &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName: cfg.FsName,
			Name:   cfg.Name,
			Debug:  cfg.Debug || cfg.LogLvl == util.TraceLevel,
			Logger: util.NewLogLogger("FuseServer", util.TraceLevel),
		},
		AttrTimeout:  &attr,
		EntryTimeout: &entry,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
