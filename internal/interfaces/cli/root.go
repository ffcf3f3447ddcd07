// Package cli implements the chemgraph command tree: global flags, config
// and logger initialisation, and output helpers shared by the subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	appmol "github.com/turtacn/ChemGraph-Engine/internal/application/molecule"
	"github.com/turtacn/ChemGraph-Engine/internal/config"
	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/cache"
	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds the global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CLIContext carries initialised dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Service      appmol.Service
	Cache        cache.Cache
	OutputFormat string
	Verbose      bool
}

// NewRootCommand creates the root command with global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "chemgraph",
		Short:   "ChemGraph: SMILES parsing, canonicalization, and similarity",
		Long:    "ChemGraph parses SMILES into molecular graphs and derives rings,\naromaticity, canonical forms, substructure matches, fingerprints,\nTanimoto similarity, and physicochemical descriptors.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: persistentPostRun,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./chemgraph.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(
		newParseCmd(),
		newValidateCmd(),
		newCanonCmd(),
		newRingsCmd(),
		newMatchCmd(),
		newSimCmd(),
		newPropsCmd(),
	)
	return cmd
}

// persistentPreRun loads config, builds the logger and service, and stores a
// CLIContext on the command context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	logging.SetDefault(logger)

	memCache := cache.NewMemory(cache.WithMemoryDefaultTTL(cfg.Cache.TTL))
	svc := appmol.NewService(logger, appmol.WithCache(memCache))

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Service:      svc,
		Cache:        memCache,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
	}
	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, cliCtx))
	return nil
}

// persistentPostRun releases what persistentPreRun built.  The memory cache
// owns a janitor goroutine that only exits on Close.
func persistentPostRun(cmd *cobra.Command, _ []string) {
	if cliCtx, err := GetCLIContext(cmd); err == nil && cliCtx.Cache != nil {
		_ = cliCtx.Cache.Close()
	}
}

// initConfig loads configuration with priority: flag path, well-known file
// locations, then env and defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./chemgraph.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".chemgraph", "config.yaml"))
	}
	searchPaths = append(searchPaths, "/etc/chemgraph/config.yaml")

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// initLogger builds a console logger writing to stderr so that command output
// on stdout stays clean.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:       level,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts the CLIContext stored by persistentPreRun.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute runs the root command.  It is the entry point used by main.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintResult renders data in the format selected by the global -o flag.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, data)
	}
	switch strings.ToLower(cliCtx.OutputFormat) {
	case "json":
		return printJSON(cmd, data)
	default:
		return printText(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// PrintError writes a formatted error, including the parse offset when the
// error carries one, to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}
