package main

import (
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/config"
	"github.com/brettbedarf/fileflow/filesystem"
	"github.com/brettbedarf/fileflow/internal/util"
	"github.com/brettbedarf/fileflow/mount"
	"github.com/brettbedarf/fileflow/requests"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
		nodesDef   string
		umount     bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&nodesDef, "nodes", "", "Path to nodes def file. The built-in sample tree is used when empty.")
	flag.StringVar(&nodesDef, "n", "", "--nodes (shorthand)")
	flag.BoolVar(&umount, "umount", false,
		"Unmount the fs first if needed before mounting again. Useful for debuggers that don't exit properly.")
	flag.BoolVar(&umount, "u", false, "--umount (shorthand)")
	flag.IntVar(&verbose, "verbose", config.InfoVerbose, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", config.InfoVerbose, "--verbose (shorthand)")
	flag.Parse()

	// Config file first, explicit flags win
	cfg := config.NewDefaultConfig()
	var cfgErr error
	if configPath != "" {
		var override *config.ConfigOverride
		if override, cfgErr = config.LoadConfigOverrideFile(configPath); cfgErr == nil {
			cfg.Merge(override)
		}
	}
	verboseSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "verbose" || f.Name == "v" {
			verboseSet = true
		}
	})
	if verboseSet || configPath == "" {
		cfg.Merge(&config.ConfigOverride{LogLvl: &verbose})
	}

	// Initialize logger
	util.InitializeLogger(cfg.LogLvl, nil)
	logger := util.GetLogger("main")
	if cfgErr != nil {
		logger.Fatal().Err(cfgErr).Str("config", configPath).Msg("Failed to load config file")
	}

	mnt := flag.Arg(0)
	logger.Info().Int("verbose", verbose).Str("nodes", nodesDef).Str("mnt", mnt).Msg("FileFlow server initializing")
	// Check if mount point is provided
	if mnt == "" {
		logger.Fatal().Msg("Mount point not specified; it must be passed as the argument")
	}
	// Try unmount if requested
	if umount { // send cli command
		cmd := exec.Command("fusermount", "-u", mnt)
		// we ignore error here if not already mounted
		cmd.Run() // nolint:errcheck
	}

	// Init the tree
	store := filesystem.NewFS(cfg)
	var reqs []*fileflow.NodeRequest
	if nodesDef != "" {
		var err error
		reqs, err = requests.LoadNodesFile(nodesDef)
		if err != nil {
			logger.Fatal().Err(err).Str("nodes", nodesDef).Msg("Failed to read nodes file")
		}
		logger.Debug().Str("nodes", nodesDef).Int("count", len(reqs)).Msg("Nodes file loaded successfully")
	} else {
		logger.Warn().Msg("No nodes file provided, using the sample tree")
		reqs = requests.DefaultNodes()
	}
	added, err := store.Load(reqs)
	if err != nil {
		logger.Warn().Err(err).Int("added", added).Int("requested", len(reqs)).Msg("Some nodes were not added")
	}

	// Serve
	srv := mount.New(store, cfg)
	if err := srv.Serve(mnt); err != nil {
		logger.Fatal().Err(err).Msg("Failed to mount filesystem")
	}

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	logger.Info().Str("mountpoint", mnt).Int("records", len(store.Records())).Msg("Filesystem mounted successfully")

	// Wait for termination signal
	sig := <-signalChan
	logger.Info().Str("signal", sig.String()).Msg("Received signal, unmounting filesystem")

	// Unmount the filesystem
	if err := srv.Unmount(); err != nil {
		logger.Error().Err(err).Msg("Failed to unmount filesystem")
	} else {
		logger.Info().Msg("Filesystem unmounted successfully")
	}
}
