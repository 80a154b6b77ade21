package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
)

// ErrProfile wraps every profiling failure.
var ErrProfile = errors.New("profile")

// Profiler starts and stops the profiles enabled in a [Config].
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cfg     *Config
	cpuFile *os.File
}

// Start begins CPU profiling if enabled. It reads the [Config] at call time,
// so it can run after flags are parsed.
func (p *Profiler) Start() error {
	if p.cfg.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.cfg.CPUProfile)
	if err != nil {
		return fmt.Errorf("%w: cpu: %w", ErrProfile, err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: cpu: %w", ErrProfile, err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the heap and allocs snapshots. It is a
// no-op for profiles that are disabled.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: cpu: %w", ErrProfile, err))
		}

		p.cpuFile = nil
	}

	for name, path := range map[string]string{
		"heap":   p.cfg.HeapProfile,
		"allocs": p.cfg.AllocsProfile,
	} {
		if path == "" {
			continue
		}

		err := writeSnapshot(name, path)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func writeSnapshot(name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProfile, name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("%w: %s: %w", ErrProfile, name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProfile, name, err)
	}

	return nil
}
