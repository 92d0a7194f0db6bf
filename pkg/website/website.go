// Package website stages a static website directory into a distribution
// directory.
package website

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
	"github.com/yaklabco/autoxbuild/internal/log"
	"github.com/yaklabco/autoxbuild/pkg/fsutils"
	"github.com/yaklabco/autoxbuild/pkg/sh"
)

// ErrSourceMissing is returned when the website source directory does not exist.
var ErrSourceMissing = errors.New("website source directory does not exist")

// ErrOverlap is returned when Dst lies inside Src, or when Clean would remove Src.
var ErrOverlap = errors.New("website source and destination overlap")

// Options describes a copy.
type Options struct {
	// Src is the website directory to copy from.
	Src string
	// Dst is the directory the contents of Src are copied into.
	Dst string
	// Exclude holds glob patterns matched against slash-separated paths
	// relative to Src. A matching directory is skipped with everything in it.
	Exclude []string
	// Clean removes Dst before copying.
	Clean bool
}

// Result reports what a copy staged.
type Result struct {
	Files   int
	Dirs    int
	Skipped int
}

// Copy stages the contents of opts.Src into opts.Dst, overwriting files that
// already exist there. Symlinks to files are copied as regular files; other
// symlinks are skipped. Excludes match either the relative path or the base
// name. ctx is checked between entries.
func Copy(ctx context.Context, opts Options) (Result, error) {
	var result Result

	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return result, err
	}

	if err := checkOverlap(opts); err != nil {
		return result, err
	}

	info, err := os.Stat(opts.Src)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return result, fmt.Errorf("%w: %s", ErrSourceMissing, opts.Src)
	case err != nil:
		return result, fmt.Errorf("can't stat %s: %w", opts.Src, err)
	case !info.IsDir():
		return result, fmt.Errorf("website source %s is not a directory", opts.Src)
	}

	if opts.Clean {
		slog.DebugContext(ctx, "cleaning website destination", log.Dst, opts.Dst)
		if err := sh.Rm(opts.Dst); err != nil {
			return result, err
		}
	}

	err = filepath.WalkDir(opts.Src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(opts.Src, path)
		if err != nil {
			return fmt.Errorf("can't relativize %s: %w", path, err)
		}
		target := filepath.Join(opts.Dst, rel)

		if rel != "." && isExcluded(excludes, filepath.ToSlash(rel)) {
			result.Skipped++
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case entry.IsDir():
			result.Dirs++
			return sh.MkdirAll(target)
		case entry.Type()&fs.ModeSymlink != 0:
			// Dangling links and links to directories are not staged.
			if fsInfo, statErr := os.Stat(path); statErr != nil || fsInfo.IsDir() {
				result.Skipped++
				return nil
			}
		case !entry.Type().IsRegular():
			result.Skipped++
			return nil
		}

		result.Files++
		return sh.Copy(target, path)
	})
	if err != nil {
		return result, fmt.Errorf("copying website %s to %s: %w", opts.Src, opts.Dst, err)
	}

	slog.DebugContext(ctx, "website staged",
		log.Src, opts.Src, log.Dst, opts.Dst, log.Files, result.Files, log.Dirs, result.Dirs)

	return result, nil
}

func checkOverlap(opts Options) error {
	dstInSrc, err := fsutils.IsWithin(opts.Src, opts.Dst)
	if err != nil {
		return err
	}
	if dstInSrc {
		return fmt.Errorf("%w: %s is inside %s", ErrOverlap, opts.Dst, opts.Src)
	}
	if !opts.Clean {
		return nil
	}

	srcInDst, err := fsutils.IsWithin(opts.Dst, opts.Src)
	if err != nil {
		return err
	}
	if srcInDst {
		return fmt.Errorf("%w: cleaning %s would remove %s", ErrOverlap, opts.Dst, opts.Src)
	}

	return nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	var firstErr error
	globs := lo.FilterMap(patterns, func(pattern string, _ int) (glob.Glob, bool) {
		compiled, err := glob.Compile(pattern, '/')
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			return nil, false
		}
		return compiled, true
	})

	return globs, firstErr
}

func isExcluded(excludes []glob.Glob, rel string) bool {
	return lo.SomeBy(excludes, func(g glob.Glob) bool {
		return g.Match(rel) || g.Match(filepath.Base(filepath.FromSlash(rel)))
	})
}
