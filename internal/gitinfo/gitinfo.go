// Package gitinfo answers repository questions about working
// directories: current branch for the dashboard header, and worktree
// canonicalization for grouping sessions. Lookups shell out to git and
// are cached because the dashboard asks for the same directories on
// every request.
package gitinfo

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logging"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// StatusTTL is how long a cached repository status stays fresh. Stale
// entries are recomputed lazily on the next access, never evicted.
const StatusTTL = 5 * time.Minute

type statusEntry struct {
	status   models.RepoStatus
	cachedAt time.Time
}

// Cache is a lazy, pull-based repository status cache keyed by
// directory. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]statusEntry
	ttl     time.Duration

	// Overridable for tests.
	now    func() time.Time
	lookup func(dir string) (models.RepoStatus, error)
}

// NewCache returns a status cache backed by the git CLI.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]statusEntry),
		ttl:     StatusTTL,
		now:     time.Now,
		lookup:  lookupStatus,
	}
}

// Status returns the repository status for dir, recomputing when no
// fresh entry exists. A failed lookup degrades to a non-repo status
// rather than an error.
func (c *Cache) Status(dir string) models.RepoStatus {
	dir = filepath.Clean(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[dir]; ok && c.now().Sub(entry.cachedAt) < c.ttl {
		return entry.status
	}

	status, err := c.lookup(dir)
	if err != nil {
		logging.Warnf("repository status for %s: %v", dir, err)
		status = models.RepoStatus{IsRepo: false}
	}
	c.entries[dir] = statusEntry{status: status, cachedAt: c.now()}
	return status
}

// Clear drops all cached entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]statusEntry)
}

func lookupStatus(dir string) (models.RepoStatus, error) {
	inside, err := git(dir, "rev-parse", "--is-inside-work-tree")
	if err != nil || inside != "true" {
		// Not a repository is a normal answer, not a failure.
		return models.RepoStatus{IsRepo: false}, nil
	}

	branch, err := git(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return models.RepoStatus{}, err
	}
	return models.RepoStatus{IsRepo: true, Branch: branch}, nil
}

// ResolveCanonical maps a worktree checkout to its main repository
// directory. The second return reports whether dir was a worktree. A
// directory that is not a repository resolves to itself.
func ResolveCanonical(dir string) (string, bool, error) {
	commonDir, err := git(dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return dir, false, nil
	}

	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(dir, commonDir)
	}
	commonDir = filepath.Clean(commonDir)

	gitDir, err := git(dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return dir, false, nil
	}
	gitDir = filepath.Clean(gitDir)

	if gitDir == commonDir {
		return dir, false, nil
	}
	return filepath.Dir(commonDir), true, nil
}

// git runs one git command targeting dir via -C and returns trimmed
// stdout. Stderr is folded into the error message on failure.
func git(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	var stdout, stderr bytes.Buffer
	command := exec.Command("git", fullArgs...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), dir, err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
