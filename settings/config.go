package settings

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for settings.
type Flags struct {
	Path       string
	Root       string
	LineEnding string
	IDs        string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values that override the settings file. Empty
// values leave the file's value in place.
type Config struct {
	Path       string
	Root       string
	LineEnding string
	IDs        string
	Flags      Flags
}

// NewConfig returns a [Config] using the "settings", "root", "line-ending"
// and "ids" flags.
func NewConfig() *Config {
	f := Flags{
		Path:       "settings",
		Root:       "root",
		LineEnding: "line-ending",
		IDs:        "ids",
	}

	return f.NewConfig()
}

// RegisterFlags adds settings flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Path, c.Flags.Path, "",
		fmt.Sprintf("settings file (default %s)", DefaultPath()))
	flags.StringVar(&c.Root, c.Flags.Root, "",
		"directory holding filter files")
	flags.StringVar(&c.LineEnding, c.Flags.LineEnding, "",
		fmt.Sprintf("line ending for written files, one of: %s", LineEndings()))
	flags.StringVar(&c.IDs, c.Flags.IDs, "",
		fmt.Sprintf("block id generator, one of: %s", IDSources()))
}

// RegisterCompletions registers shell completions for settings flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.LineEnding,
		cobra.FixedCompletions(LineEndings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.LineEnding, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.IDs,
		cobra.FixedCompletions(IDSources(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.IDs, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Root,
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Root, err)
	}

	return nil
}

// SettingsPath returns the settings file in use.
func (c *Config) SettingsPath() string {
	if c.Path != "" {
		return c.Path
	}

	return DefaultPath()
}

// Resolve loads the settings file and applies flag overrides.
func (c *Config) Resolve() (Settings, error) {
	s, err := Load(c.SettingsPath())
	if err != nil {
		return Settings{}, err
	}

	if c.Root != "" {
		s.Root = c.Root
	}

	if c.LineEnding != "" {
		s.LineEnding = LineEnding(c.LineEnding)
	}

	if c.IDs != "" {
		s.IDs = IDSource(c.IDs)
	}

	err = s.Validate()
	if err != nil {
		return Settings{}, err
	}

	return s, nil
}
