package profile

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPUProfile    string
	HeapProfile   string
	AllocsProfile string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds profile output paths. Empty paths disable the profile.
type Config struct {
	CPUProfile    string
	HeapProfile   string
	AllocsProfile string
	Flags         Flags
}

// NewConfig returns a [Config] using the "cpu-profile", "heap-profile" and
// "allocs-profile" flags, with all profiles disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:    "cpu-profile",
		HeapProfile:   "heap-profile",
		AllocsProfile: "allocs-profile",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file on exit")
	flags.StringVar(&c.AllocsProfile, c.Flags.AllocsProfile, "", "write allocs profile to file on exit")
}

// RegisterCompletions marks the profile flags as taking file names.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	for _, name := range []string{c.Flags.CPUProfile, c.Flags.HeapProfile, c.Flags.AllocsProfile} {
		err := cmd.MarkPersistentFlagFilename(name, "prof", "pprof")
		if err != nil {
			return err
		}
	}

	return nil
}

// Enabled reports whether any profile is requested.
func (c *Config) Enabled() bool {
	return c.CPUProfile != "" || c.HeapProfile != "" || c.AllocsProfile != ""
}

// NewProfiler creates a [Profiler] for this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{cfg: c}
}
