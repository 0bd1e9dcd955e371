// SPDX-License-Identifier: MIT

// Package cli implements the dynhung command-line interface.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/dynhung/internal/config"
	"github.com/katalvlaran/dynhung/internal/logger"
)

const appName = "dynhung"

// Log levels exported for use in main.go.
const (
	LogDebug = zapcore.DebugLevel
	LogInfo  = zapcore.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information shown by "dynhung version".
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *zap.Logger

	out     io.Writer
	level   zap.AtomicLevel
	v       *viper.Viper
	cfgFile string
}

// New creates a CLI that prints results to out and logs to logw.
func New(out, logw io.Writer, level zapcore.Level) *CLI {
	atom := zap.NewAtomicLevelAt(level)

	return &CLI{
		Logger: logger.NewConsole(logw, atom),
		out:    out,
		level:  atom,
		v:      config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level zapcore.Level) {
	c.level.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "dynhung solves assignment problems and re-optimizes them incrementally",
		Long: `dynhung solves the square assignment problem with the Hungarian method and
keeps the optimum current as rows or columns of the cost matrix change, reusing
the previous dual values instead of solving from scratch.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (json, toml or yaml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig resolves configuration for the running command.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.v, c.cfgFile)
}
