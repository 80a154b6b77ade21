// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports multiple output formats ([FormatJSON], [FormatLogfmt], and
// [FormatText]) and severity levels ([LevelError], [LevelWarn], [LevelInfo],
// and [LevelDebug]). Use [NewHandler] to create a handler directly, or use
// [Config] with CLI flag integration via [github.com/spf13/pflag] and shell
// completion support via [github.com/spf13/cobra].
//
// The lootfilter command creates a [Config], registers flags, then builds a
// handler before running any subcommand:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
//
// The parser reports dropped lines at [LevelDebug], so running with
// --log-level=debug shows exactly which parts of a rule file did not survive
// a parse.
package log
