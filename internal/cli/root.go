// Package cli implements the gravl command tree. Every subcommand is one
// invocation against a single graph store: open, mutate or query, exit.
// Query modes picked by flags are folded into one request value before they
// reach the engine; the engine never sees individual flags.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kovacq/gravl/pkg/constraint"
	"github.com/kovacq/gravl/pkg/engine"
	"github.com/kovacq/gravl/pkg/graph"
)

// Exit codes, one per outcome kind. Stable: scripts depend on them.
const (
	ExitOK                = 0
	ExitNotFound          = 1
	ExitIO                = 2
	ExitParse             = 3
	ExitInvalidConstraint = 4
	ExitUnsupported       = 5
	ExitCyclic            = 6
)

// errNotFound marks the no-solution outcome. The command has already
// printed its result; only the exit code remains to set.
var errNotFound = errors.New("no solution")

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "gravl",
	Short:         "gravl is a persistent directed-graph engine",
	Long:          "gravl records graph mutations in a durable command log and answers\nconstrained path, cycle and ordering queries over the replayed graph.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}
	if !errors.Is(err, errNotFound) {
		fmt.Fprintln(os.Stderr, "gravl:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errNotFound):
		return ExitNotFound
	case errors.Is(err, engine.ErrCorruptLog):
		return ExitParse
	case errors.Is(err, constraint.ErrInvalid):
		return ExitInvalidConstraint
	case errors.Is(err, engine.ErrUnsupported):
		return ExitUnsupported
	case errors.Is(err, graph.ErrCyclic):
		return ExitCyclic
	case errors.Is(err, engine.ErrIO):
		return ExitIO
	}
	// Flag misuse and other pre-engine failures read as malformed queries.
	return ExitInvalidConstraint
}

func init() {
	// Assigned here rather than in the literal: initConfig reads the
	// persistent flag set back off rootCmd, and referencing it from the
	// variable initializer would close an initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		setupLogging()
		return nil
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./gravl.yaml)")
	rootCmd.PersistentFlags().StringP("path", "p", ".", "graph store directory")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.SetVersionTemplate("gravl {{.Version}}\n")
}

// initConfig wires viper: explicit file, else ./gravl.yaml, with GRAVL_*
// environment variables and flags layered on top.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("gravl")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("GRAVL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path")); err != nil {
		return err
	}
	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func setupLogging() {
	var level slog.Level
	switch viper.GetString("log-level") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// storePath returns the configured store directory.
func storePath() string {
	return viper.GetString("path")
}

// openEngine opens the engine over the configured store.
func openEngine() *engine.Engine {
	return engine.Open(storePath(), slog.Default())
}
