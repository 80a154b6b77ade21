// Package version reports build metadata for the lootfilter binary.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"   yaml:"version"`
	Revision  string `json:"revision"  yaml:"revision"`
	Branch    string `json:"branch"    yaml:"branch"`
	BuildUser string `json:"buildUser" yaml:"buildUser"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform"  yaml:"platform"`
}

// Get returns the current build metadata. An unset [Version] reads as "dev".
func Get() Info {
	v := Version
	if v == "" {
		v = "dev"
	}

	return Info{
		Version:   v,
		Revision:  Revision,
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

// String renders i on one line, omitting unset fields.
func (i Info) String() string {
	parts := []string{i.Version}

	if i.Revision != "" {
		parts = append(parts, "revision "+i.Revision)
	}

	if i.Branch != "" {
		parts = append(parts, "branch "+i.Branch)
	}

	if i.BuildDate != "" {
		parts = append(parts, "built "+i.BuildDate)
	}

	if i.BuildUser != "" {
		parts = append(parts, "by "+i.BuildUser)
	}

	parts = append(parts, i.GoVersion, i.Platform)

	return strings.Join(parts, ", ")
}
