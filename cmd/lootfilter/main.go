// Package main provides the lootfilter CLI, which formats loot filter rule
// files, lists their blocks, and converts them to and from a structured
// YAML or JSON form.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/lootfilter/filter"
	"go.jacobcolvin.com/lootfilter/log"
	"go.jacobcolvin.com/lootfilter/profile"
	"go.jacobcolvin.com/lootfilter/settings"
	"go.jacobcolvin.com/lootfilter/store"
)

var (
	// ErrReadInput indicates an input could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates an output could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrTerminalInput indicates stdin was requested while attached to a
	// terminal.
	ErrTerminalInput = errors.New("refusing to read a filter from a terminal")
	// ErrUsage indicates an invalid combination of arguments or flags.
	ErrUsage = errors.New("usage")
)

func main() {
	a := newApp()

	err := errors.Join(a.rootCmd().Execute(), a.profiler.Stop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands. It is filled in by the root
// command's PersistentPreRunE once flags are parsed.
type app struct {
	logCfg      *log.Config
	settingsCfg *settings.Config
	profileCfg  *profile.Config
	profiler    *profile.Profiler
	logger      *slog.Logger
	settings    settings.Settings
}

func newApp() *app {
	a := &app{
		logCfg:      log.NewConfig(),
		settingsCfg: settings.NewConfig(),
		profileCfg:  profile.NewConfig(),
	}

	a.profiler = a.profileCfg.NewProfiler()

	return a
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lootfilter",
		Short: "Format and convert loot filter rule files",
		Long: `lootfilter reads loot filter rule files, normalizes their formatting, lists
their blocks, and converts them to and from a structured YAML or JSON form.

Arguments named "-" read from stdin.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	a.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	a.settingsCfg.RegisterFlags(rootCmd.PersistentFlags())
	a.profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newFmtCmd(a),
		newBlocksCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSchemaCmd(),
		newLsCmd(a),
		newSettingsCmd(a),
		newVersionCmd(),
	)

	err := a.logCfg.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	err = a.settingsCfg.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	err = a.profileCfg.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	logger, err := a.logCfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.logger = logger
	slog.SetDefault(logger)

	s, err := a.settingsCfg.Resolve()
	if err != nil {
		return err
	}

	a.settings = s

	if a.profileCfg.Enabled() {
		err = a.profiler.Start()
		if err != nil {
			return err
		}
	}

	logger.Debug("resolved settings",
		slog.String("path", a.settingsCfg.SettingsPath()),
		slog.String("root", s.Root),
		slog.String("line_ending", string(s.LineEnding)),
		slog.String("ids", string(s.IDs)),
	)

	return nil
}

func (a *app) parser() *filter.Parser {
	return filter.NewParser(
		filter.WithIDGenerator(a.settings.IDs.Generator()),
		filter.WithLogger(a.logger),
	)
}

func (a *app) serializer() *filter.Serializer {
	return filter.NewSerializer(filter.WithLineEnding(a.settings.LineEnding.Newline()))
}

func (a *app) store(root string) *store.Store {
	return store.New(root,
		store.WithExtension(a.settings.Extension),
		store.WithLogger(a.logger),
	)
}

// readInput reads the named file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name != "-" {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		return data, nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return nil, ErrTerminalInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}

	return data, nil
}

// writeOutput writes data to the named file, or to the command's output when
// name is empty or "-".
func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(name, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
