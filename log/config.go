package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for log configuration.
type Flags struct {
	Level  string
	Format string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Level:  string(LevelInfo),
		Format: string(FormatText),
		Flags:  f,
	}
}

// Config holds CLI flag values for log configuration.
//
// Register flags with [Config.RegisterFlags], then call [Config.NewLogger]
// once flags are parsed.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a [Config] using the "log-level" and "log-format" flags,
// defaulting to [LevelInfo] and [FormatText].
func NewConfig() *Config {
	f := Flags{
		Level:  "log-level",
		Format: "log-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("log level, one of: %s", GetAllLevelStrings()))
	flags.StringVar(&c.Format, c.Flags.Format, c.Format,
		fmt.Sprintf("log format, one of: %s", GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for log flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(GetAllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewHandler creates a [Handler] that writes to w, using the level and
// format strings stored in c.
func (c *Config) NewHandler(w io.Writer) (Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}

// NewLogger wraps [Config.NewHandler] in a [*slog.Logger].
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	h, err := c.NewHandler(w)
	if err != nil {
		return nil, err
	}

	return slog.New(h), nil
}
