package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/horizon/internal/config"
	"github.com/dusk-indust/horizon/internal/horizon"
	"github.com/dusk-indust/horizon/internal/records"
)

// Key is the record key type the CLI and both servers work with.
type Key = int64

// CLI flags shared by every command.
type cliFlags struct {
	ConfigDir string
	Records   string
	LogLevel  string
	Strict    bool
	Workers   int
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return runContext(context.Background(), args, stdout, stderr)
}

// runContext executes the CLI; long-running commands stop when ctx is done.
func runContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries the resolved configuration from the root command down to the
// subcommands.
type app struct {
	flags  cliFlags
	cfg    *config.ProjectConfig
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "horizon",
		Short: "Bounded views over parent/child record forests",
		Long: `horizon indexes a flat list of records that point at their parent and
answers neighbourhood queries: the children of a record, its parent, and the
view of ancestors and descendants around it within a fixed number of levels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigDir, "config-dir", ".", "directory containing horizon.yml")
	pf.StringVar(&a.flags.Records, "records", "", "records file (.json, .yml or .yaml); - reads JSON from stdin")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.Strict, "strict", false, "reject records whose parent is not in the input")
	pf.IntVar(&a.flags.Workers, "workers", 0, "goroutines used to build the index")

	root.AddCommand(
		newViewCmd(a),
		newDiagramCmd(a),
		newChildrenCmd(a),
		newParentCmd(a),
		newCountCmd(a),
		newStatsCmd(a),
		newServeCmd(a),
		newServeMCPCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads horizon.yml, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("records") {
		cfg.Records = a.flags.Records
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if flags.Changed("strict") {
		cfg.StrictParents = a.flags.Strict
	}
	if flags.Changed("workers") {
		cfg.BuildWorkers = a.flags.Workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// loadIndex reads the configured records source and indexes it.
func (a *app) loadIndex() (*horizon.Index[Key], error) {
	if a.cfg.Records == "" {
		return nil, fmt.Errorf("no records source: pass --records or set records in horizon.yml")
	}

	start := time.Now()
	recs, err := records.LoadFile[Key](a.cfg.Records)
	if err != nil {
		return nil, err
	}
	ix, err := horizon.Build(recs, a.cfg.IndexOptions())
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", a.cfg.Records, err)
	}

	a.logger.Debug("index built",
		"source", a.cfg.Records,
		"records", ix.Len(),
		"workers", a.cfg.BuildWorkers,
		"elapsed", time.Since(start),
	)
	return ix, nil
}

func parseID(arg string) (Key, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.stdout, version)
		},
	}
}
