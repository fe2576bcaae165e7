// Package resolver maps internal storage paths recorded in the metadata
// store onto the mounted library root.
//
// The store records paths in its own container-side convention — absolute
// paths like "/usr/src/app/upload/…", or bare relative forms like
// "upload/…" and the doubled "upload/upload/…". The mounted library exposes
// the same tree under a different root, so resolution tries a fixed,
// ordered set of prefix rewrites and returns the first candidate that
// exists as a regular file.
//
// Resolution is a pure function of (internal path, root, prefix table).
// Nothing is cached across assets: paths are cheap to probe and the result
// must always reflect the current mount state.
package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// containerPrefix is the store's internal application root, stripped before
// any candidate is built.
const containerPrefix = "usr/src/app/"

// Resolver resolves internal storage paths against one mounted library root.
type Resolver struct {
	root string
}

// New constructs a Resolver for the given library root. An empty root
// disables rewriting: only paths that already exist verbatim resolve.
func New(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve maps internalPath to an existing absolute path under the root.
// The boolean reports success; a false result is a per-asset condition
// ("missing source"), distinct from the root itself being unreachable
// (see [Resolver.RootAvailable]).
//
// Candidates are probed in priority order:
//  1. the internal path verbatim, when already absolute and existing;
//  2. the path joined to the root (after stripping the container prefix);
//  3. for "upload/upload/…" paths, the doubled prefix collapsed away;
//  4. for "upload/…" paths, the single prefix stripped.
func (r *Resolver) Resolve(internalPath string) (string, bool) {
	if internalPath == "" {
		return "", false
	}

	if isRegularFile(internalPath) {
		return internalPath, true
	}

	if r.root == "" {
		return "", false
	}

	rel := strings.TrimLeft(strings.ReplaceAll(internalPath, `\`, "/"), "/")
	rel = strings.TrimPrefix(rel, containerPrefix)

	candidates := []string{
		filepath.Join(r.root, rel),
	}
	if strings.HasPrefix(rel, "upload/upload/") {
		candidates = append(candidates, filepath.Join(r.root, strings.TrimPrefix(rel, "upload/upload/")))
	}
	if strings.HasPrefix(rel, "upload/") {
		candidates = append(candidates, filepath.Join(r.root, strings.TrimPrefix(rel, "upload/")))
	}

	for _, c := range candidates {
		if isRegularFile(c) {
			return c, true
		}
	}

	return "", false
}

// RootAvailable reports whether the library root is reachable and non-empty.
// Checked once per run by the coordinator; the result feeds the deletion
// guard so an unmounted library can never trigger a cleanup pass.
//
// An unset root counts as available: resolution then only ever succeeds for
// verbatim absolute paths, and the guard's found-count checks still apply.
func (r *Resolver) RootAvailable() bool {
	if r.root == "" {
		return true
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return false
	}

	return len(entries) > 0
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
