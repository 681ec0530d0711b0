package content

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverOptions select the files of a source tree.
type DiscoverOptions struct {
	// Excludes are glob patterns matched against the relative slash path and
	// the base name of every file and directory.
	Excludes []string
	// Includes are glob patterns, relative to the source root, naming files
	// that are added even when excluded.
	Includes []string
	// Dest is never descended into.
	Dest string
}

// Discover lists the regular files under root as relative slash paths, in
// lexical walk order followed by any force-included files.
func Discover(ctx context.Context, root string, opts DiscoverOptions) ([]string, error) {
	destAbs := ""
	if opts.Dest != "" {
		if abs, err := filepath.Abs(opts.Dest); err == nil {
			destAbs = abs
		}
	}

	seen := map[string]bool{}
	var files []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}
		relOS, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relOS)

		if d.IsDir() {
			if isDest(p, destAbs) || matchAny(opts.Excludes, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(opts.Excludes, rel) || !isRegular(p, d) {
			return nil
		}
		seen[rel] = true
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, pattern := range opts.Includes {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			relOS, err := filepath.Rel(root, m)
			if err != nil {
				return nil, err
			}
			rel := filepath.ToSlash(relOS)
			if seen[rel] || insideDest(m, destAbs) {
				continue
			}
			if info, err := os.Stat(m); err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[rel] = true
			files = append(files, rel)
		}
	}
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
	}
	return false
}

func isRegular(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(p)
		return err == nil && info.Mode().IsRegular()
	}
	return false
}

func isDest(p, destAbs string) bool {
	if destAbs == "" {
		return false
	}
	abs, err := filepath.Abs(p)
	return err == nil && abs == destAbs
}

func insideDest(p, destAbs string) bool {
	if destAbs == "" {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(destAbs, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
