package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/yaklabco/autoxbuild/pkg/fsutils"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Field   string
	Message string
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("config warning: %s: %s", w.Field, w.Message)
}

// ValidationResults holds the results of configuration validation.
type ValidationResults struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// HasErrors returns true if there are validation errors.
func (r ValidationResults) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (r ValidationResults) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ErrorMessage returns a combined error message for all validation errors.
func (r ValidationResults) ErrorMessage() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// WriteWarnings writes all warnings to the given writer.
func (r ValidationResults) WriteWarnings(w io.Writer) {
	for _, warn := range r.Warnings {
		_, _ = fmt.Fprintln(w, warn.String())
	}
}

func (r *ValidationResults) addError(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResults) addWarning(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationWarning{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the configuration for errors and warnings.
// Relative website paths are interpreted against the current directory.
func (c *Config) Validate() ValidationResults {
	var result ValidationResults

	if c.Build.Cmd == "" {
		result.addError("build.cmd", "must not be empty")
	}
	if c.Bundle.Cmd == "" {
		result.addError("bundle.cmd", "must not be empty")
	}

	for i, pattern := range c.Website.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("website.exclude[%d]", i), "invalid pattern %q: %v", pattern, err)
		}
	}

	for _, assignment := range c.Env {
		if !strings.Contains(assignment, "=") {
			result.addWarning("env", "ignoring %q, expected KEY=VALUE", assignment)
		}
	}

	c.validateWebsitePaths(&result)

	return result
}

func (c *Config) validateWebsitePaths(result *ValidationResults) {
	src, dst := c.Website.Src, c.Website.Dst
	if src == "" {
		result.addError("website.src", "must not be empty")
	}
	if dst == "" {
		result.addError("website.dst", "must not be empty")
	}
	if src == "" || dst == "" {
		return
	}

	// Staging into the source tree would copy the copy.
	if nested, err := fsutils.IsWithin(src, dst); err == nil && nested {
		result.addError("website.dst", "%q is inside website.src %q", dst, src)
	}
	if c.Website.Clean {
		if nested, err := fsutils.IsWithin(dst, src); err == nil && nested {
			result.addError("website.clean", "cleaning %q would delete website.src %q", dst, src)
		}
	}

	cleaned := filepath.Clean(dst)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		result.addWarning("website.dst", "%q is outside the project directory", dst)
	}
}
