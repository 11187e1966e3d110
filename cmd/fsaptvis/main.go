// Package main is the fsaptvis CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/fsaptvis/internal/cli"
	"github.com/hyperjump/fsaptvis/internal/config"
	"github.com/hyperjump/fsaptvis/internal/dataset"
	"github.com/hyperjump/fsaptvis/internal/interaction"
	"github.com/hyperjump/fsaptvis/internal/metrics"
	"github.com/hyperjump/fsaptvis/internal/pairkey"
	"github.com/hyperjump/fsaptvis/internal/server"
	"github.com/hyperjump/fsaptvis/internal/synth"
	"github.com/hyperjump/fsaptvis/internal/watcher"
	"github.com/hyperjump/fsaptvis/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/fsaptvis/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development), and falls back to built-in
// defaults when neither file exists. Returns the config and the path actually loaded
// ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "summary":
		runSummary()
	case "pairs":
		runPairs()
	case "init":
		runInit()
	case "version", "--version", "-v":
		fmt.Printf("fsaptvis version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode, cfg.Service.Name)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	collector := metrics.NewCollector(cfg.Metrics.Namespace)
	components, err := initializeComponents(cfg, logger, collector)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Dataset.Watch && cfg.Dataset.Path != "" {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		store := components.Store
		watchSvc := watcher.NewWatcher(cfg.Dataset.Path, func(string) {
			// Reload logs its own failures and keeps the previous table.
			_ = store.Reload()
		}, watchOpts...)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start dataset watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Service, cfg, logger, collector)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// pairCommand holds the flags shared by analyze and summary.
type pairCommand struct {
	fs         *flag.FlagSet
	configPath *string
	serverURL  *string
	output     *string
}

func newPairCommand(name string) *pairCommand {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &pairCommand{
		fs:         fs,
		configPath: fs.String("config", defaultConfigPath, "config file path (local mode)"),
		serverURL:  fs.String("server", "", "server URL (empty = compute locally from the configured dataset)"),
		output:     fs.String("output", "text", "output format: text or json"),
	}
}

// parse parses args and returns the ligand and protein identifiers and the output format.
func (c *pairCommand) parse(args []string) (ligandID, proteinID string, format cli.OutputFormat) {
	_ = c.fs.Parse(reorderArgs(c.fs, args))
	if c.fs.NArg() != 2 {
		fmt.Fprintf(c.fs.Output(), "Usage: fsaptvis %s [flags] <ligand_id> <protein_id>\n\n", c.fs.Name())
		c.fs.PrintDefaults()
		os.Exit(1)
	}
	format, err := cli.ParseOutputFormat(*c.output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return c.fs.Arg(0), c.fs.Arg(1), format
}

func runAnalyze() {
	cmd := newPairCommand("analyze")
	threshold := cmd.fs.Float64("threshold", interaction.DefaultThreshold, "minimum |energy| kept; <= 0 disables filtering")
	ligandID, proteinID, format := cmd.parse(os.Args[2:])
	thresholdSet := flagWasSet(cmd.fs, "threshold")

	if *cmd.serverURL != "" {
		var th *float64
		if thresholdSet {
			th = threshold
		}
		rec, err := newAPIClient(*cmd.serverURL).Analyze(ligandID, proteinID, th)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
			os.Exit(1)
		}
		writeOrExit(cli.WriteRecord(os.Stdout, pairkey.Key(ligandID, proteinID), rec, format))
		return
	}

	cfg, svc := localService(*cmd.configPath)
	th := cfg.Analysis.ThresholdOrDefault()
	if thresholdSet {
		th = *threshold
	}
	rec, err := svc.GetInteractions(context.Background(), ligandID, proteinID, th)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}
	writeOrExit(cli.WriteRecord(os.Stdout, pairkey.Key(ligandID, proteinID), rec, format))
}

func runSummary() {
	cmd := newPairCommand("summary")
	ligandID, proteinID, format := cmd.parse(os.Args[2:])

	if *cmd.serverURL != "" {
		summary, err := newAPIClient(*cmd.serverURL).Summary(ligandID, proteinID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
			os.Exit(1)
		}
		writeOrExit(cli.WriteSummary(os.Stdout, pairkey.Key(ligandID, proteinID), summary, format))
		return
	}

	_, svc := localService(*cmd.configPath)
	summary, err := svc.Summarize(context.Background(), ligandID, proteinID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
		os.Exit(1)
	}
	writeOrExit(cli.WriteSummary(os.Stdout, pairkey.Key(ligandID, proteinID), summary, format))
}

func runPairs() {
	fs := flag.NewFlagSet("pairs", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (local mode)")
	serverURL := fs.String("server", "", "server URL (empty = read the configured dataset)")
	output := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var pairs []string
	if *serverURL != "" {
		pairs, err = newAPIClient(*serverURL).Pairs()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Listing pairs failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		_, svc := localService(*configPath)
		pairs = svc.AvailablePairs()
	}
	writeOrExit(cli.WritePairs(os.Stdout, pairs, format))
}

// runInit writes a config file and a dataset file holding the built-in sample table.
func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dir := fs.String("dir", ".", "directory to write config.yaml and dataset.yaml into")
	force := fs.Bool("force", false, "overwrite existing files")
	_ = fs.Parse(os.Args[2:])

	configPath := filepath.Join(*dir, "config.yaml")
	datasetPath := filepath.Join(*dir, "dataset.yaml")
	if !*force {
		for _, p := range []string{configPath, datasetPath} {
			if _, err := os.Stat(p); err == nil {
				fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", p)
				os.Exit(1)
			}
		}
	}
	if err := writeStarterFiles(configPath, datasetPath); err != nil {
		fmt.Fprintf(os.Stderr, "Init failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s and %s\n", configPath, datasetPath)
}

func writeStarterFiles(configPath, datasetPath string) error {
	data, err := dataset.Marshal(dataset.Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(datasetPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	cfg := config.Default()
	cfg.Dataset.Path = "./" + filepath.Base(datasetPath)
	return config.Save(configPath, cfg)
}

// localService builds the interaction service from config for one-shot CLI use.
func localService(configPath string) (*config.Config, *interaction.Service) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// One-shot commands print results to stdout; only log when debugging.
	logger := zap.NewNop()
	if cfg.Debug {
		logger, err = utils.NewLogger(true, cfg.Service.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	components, err := initializeComponents(cfg, logger, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	return cfg, components.Service
}

func writeOrExit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// flagWasSet reports whether name was given explicitly on the command line.
func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// reorderArgs moves flags (and their values) ahead of the positional arguments so that
// fs.Parse sees them. Go's flag package stops at the first non-flag argument, so
// "fsaptvis analyze LIG -threshold 1 PROT_001" would otherwise leave -threshold unparsed.
// Positionals keep their relative order; everything after "--" is positional.
func reorderArgs(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			flags = append(flags, a)
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positionals = append(positionals, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positionals...)
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

// Components holds initialized services.
type Components struct {
	Store   *dataset.Store
	Service *interaction.Service
}

// initializeComponents wires the dataset store and interaction service. collector may be nil.
func initializeComponents(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) (*Components, error) {
	storeOpts := []dataset.StoreOption{dataset.WithLogger(logger)}
	svcOpts := []interaction.Option{}
	if collector != nil {
		storeOpts = append(storeOpts, dataset.WithLoadHook(collector.ObserveDatasetLoad))
		svcOpts = append(svcOpts, interaction.WithObserver(collector))
	}

	store, err := dataset.NewStore(cfg.Dataset.Path, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Info("dataset initialized",
		zap.String("path", store.Path()),
		zap.Strings("pairs", store.Snapshot().Keys()),
	)

	svc := interaction.NewService(store, synth.New(), logger, svcOpts...)
	return &Components{Store: store, Service: svc}, nil
}

func printUsage() {
	fmt.Println(`fsaptvis - fsapt interaction energy API for the structure viewer

Usage:
  fsaptvis server [flags]                          Start the HTTP server
  fsaptvis analyze [flags] <ligand> <protein>      Show significant interactions for a pair
  fsaptvis summary [flags] <ligand> <protein>      Show summary statistics for a pair
  fsaptvis pairs [flags]                           List pairs in the fixed table
  fsaptvis init [flags]                            Write a starter config.yaml and dataset.yaml
  fsaptvis version                                 Show version
  fsaptvis help                                    Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/fsaptvis/config.yaml)
  --debug            Enable debug logging

Analyze / Summary / Pairs Flags:
  --config string     Config file path (local mode)
  --server string     Server URL, e.g. http://localhost:5000. Empty (default) computes locally.
  --output string     Output format: text or json (default: text)
  --threshold float   (analyze only) Minimum |energy| kept (default from config, or 0.5)

Init Flags:
  --dir string       Target directory (default: .)
  --force            Overwrite existing files

Examples:
  fsaptvis server
  fsaptvis analyze LIG PROT_001
  fsaptvis analyze LIG PROT_001 --threshold 1.0 --output json
  fsaptvis summary --server http://localhost:5000 LIG PROT_002
  fsaptvis pairs`)
}
