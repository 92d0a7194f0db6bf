package version

import (
	"runtime/debug"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/yaklabco/autoxbuild/pkg/ui"
)

// Version is the CLI version. It can be overridden at build time via:
//
//	-ldflags "-X github.com/yaklabco/autoxbuild/cmd/autoxbuild/version.Version=v0.0.0"
var Version = "dev" //nolint:gochecknoglobals // Populated by ldflags.

// Commit is the git commit hash, overridable via ldflags like Version.
var Commit = "" //nolint:gochecknoglobals // Populated by ldflags.

// BuildDate is the RFC3339 timestamp of the build, overridable via ldflags like Version.
var BuildDate = "" //nolint:gochecknoglobals // Populated by ldflags.

// EffectiveVersion returns the best-effort version string for the binary.
// Precedence:
//  1. Version from ldflags, unless it is "dev" or empty.
//  2. Go build info `Main.Version` (set by `go install module@version`).
//  3. Go build info `vcs.revision` (+ "-dirty" if `vcs.modified=true`).
//  4. "dev".
func EffectiveVersion() string {
	v := strings.TrimSpace(Version)
	if v != "" && v != "dev" {
		return v
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		if mv := strings.TrimSpace(bi.Main.Version); mv != "" && mv != "(devel)" {
			return mv
		}
		rev, dirty := "", ""
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				if s.Value == "true" {
					dirty = "-dirty"
				}
			}
		}
		if rev != "" {
			return rev + dirty
		}
	}

	return "dev"
}

// EffectiveCommit returns Commit from ldflags, else the build info `vcs.revision`.
func EffectiveCommit() string {
	if c := strings.TrimSpace(Commit); c != "" {
		return c
	}
	return buildSetting("vcs.revision")
}

// EffectiveBuildTime returns BuildDate from ldflags, else the build info
// `vcs.time`, parsed as RFC3339.
func EffectiveBuildTime() (time.Time, bool) {
	for _, raw := range []string{strings.TrimSpace(BuildDate), buildSetting("vcs.time")} {
		if raw == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func buildSetting(key string) string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return ""
}

// String renders version, commit and build time joined by "-", with
// fang-consistent colors.
func String() string {
	colorScheme := ui.GetFangScheme()

	versionStyle := lipgloss.NewStyle().Foreground(colorScheme.QuotedString)
	commitStyle := lipgloss.NewStyle().Foreground(colorScheme.Program)
	timeStyle := lipgloss.NewStyle().Foreground(colorScheme.Flag)
	sepStyle := lipgloss.NewStyle().Foreground(colorScheme.Base)

	parts := []string{versionStyle.Render(EffectiveVersion())}
	if c := EffectiveCommit(); c != "" && c != EffectiveVersion() {
		parts = append(parts, commitStyle.Render(c))
	}
	if t, ok := EffectiveBuildTime(); ok {
		parts = append(parts, timeStyle.Render(t.In(time.Local).Format(time.RFC3339)))
	}

	return strings.Join(parts, sepStyle.Render("-"))
}
