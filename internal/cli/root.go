// Package cli implements the cacti command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jling-NM/CACTI-sub000/internal/legacy"
	"github.com/jling-NM/CACTI-sub000/internal/logging"
	"github.com/jling-NM/CACTI-sub000/internal/paths"
	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/internal/sqlite"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	logLevel  string
	jsonMode  bool
}

// app carries what the root command resolved before a subcommand runs.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *slog.Logger
	cats      *catalog.Set
}

// NewRootCmd creates the top-level "cacti" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "cacti",
		Short: "Code and rate recorded counseling sessions",
		Long: `cacti keeps coded utterances and global ratings for recorded sessions in
single-file session stores, imports legacy transcripts, and exports reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newReplayCmd(a))
	root.AddCommand(newRateCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newCodesCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup loads config, builds the logger, and loads the catalogs.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cats, err := loadCatalogs(cfg.CatalogFile)
	if err != nil {
		return err
	}

	a.configDir = dir
	a.cfg = cfg
	a.logger = logger.With("cmd", cmd.Name())
	a.cats = cats
	a.logger.Debug("configuration loaded", "config_dir", dir, "catalog_file", cfg.CatalogFile)
	return nil
}

func loadCatalogs(path string) (*catalog.Set, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// userErrors are failures caused by input rather than the environment.
var userErrors = []error{
	legacy.ErrFormat,
	sqlite.ErrSessionLocked,
	sqlite.ErrSessionNotFound,
	sqlite.ErrDuplicate,
	session.ErrRatingOutOfRange,
	session.ErrUnknownGlobal,
	session.ErrEmptySequence,
	catalog.ErrCodeNotFound,
	types.ErrInvalidTransition,
	types.ErrLogLevelUnknown,
	types.ErrLogFormatUnknown,
	errUsage,
	os.ErrNotExist,
	os.ErrExist,
}

// errUsage marks malformed arguments.
var errUsage = errors.New("usage")

func exitCode(err error) int {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
