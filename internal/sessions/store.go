// Package sessions discovers session log files under the store root,
// paginates them by recency, and materializes conversation timelines
// from their records. The store root contains one directory per
// working directory (dash-encoded path), each holding one .jsonl file
// per session; subagent logs live one level deeper and are never
// listed as top-level sessions.
package sessions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/gitinfo"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logging"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logs"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/pkg/models"
)

// Store answers session listing and timeline requests against one log
// root. Safe for concurrent use; the only mutable state is the
// resolved-worktree cache.
type Store struct {
	root     string
	fast     locator
	fallback locator

	mu       sync.Mutex
	resolved map[string]string // raw working directory -> display directory

	// Overridable for tests.
	resolve func(dir string) (string, bool, error)
}

// NewStore returns a store over the given log root directory.
func NewStore(root string) *Store {
	return &Store{
		root:     root,
		fast:     &duckdbLocator{root: root},
		fallback: &walkLocator{root: root},
		resolved: make(map[string]string),
		resolve:  gitinfo.ResolveCanonical,
	}
}

// DefaultRoot returns the conventional log root under the user's home.
func DefaultRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude", "projects"), nil
}

// ListSessions returns the descriptors for one page of sessions ordered
// most-recently-modified first, plus the total session count. The fast
// scan is tried first; any failure there degrades transparently to the
// exhaustive walk. A failing walk yields an empty page, never an error.
func (s *Store) ListSessions(limit, offset int) ([]models.SessionDescriptor, int) {
	if limit <= 0 || offset < 0 {
		return nil, 0
	}

	paths, total, err := s.fast.listPage(limit, offset)
	if err != nil {
		logging.Debugf("fast session scan unavailable, walking %s: %v", s.root, err)
		paths, total, err = s.fallback.listPage(limit, offset)
		if err != nil {
			logging.Warnf("session scan of %s failed: %v", s.root, err)
			return nil, 0
		}
	}

	descriptors := make([]models.SessionDescriptor, 0, len(paths))
	for _, path := range paths {
		desc, ok := s.describe(path)
		if !ok {
			continue
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors, total
}

// describe stats one page entry and fills in its descriptor. Only page
// entries ever reach this point, keeping per-file work off unselected
// sessions.
func (s *Store) describe(path string) (models.SessionDescriptor, bool) {
	info, err := os.Stat(path)
	if err != nil {
		// The file disappeared between scan and stat.
		return models.SessionDescriptor{}, false
	}

	rawDir := DecodeProjectDir(filepath.Base(filepath.Dir(path)))
	desc := models.SessionDescriptor{
		SessionID:        sessionIDFromPath(path),
		Directory:        rawDir,
		DisplayDirectory: s.displayDirectory(rawDir),
		LogPath:          path,
		ModifiedAt:       info.ModTime(),
		CreatedAt:        info.ModTime(),
	}
	if ts, ok := logs.FirstTimestamp(path); ok {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			desc.CreatedAt = t
		}
	}
	return desc, true
}

// displayDirectory resolves a worktree checkout to its main directory,
// caching the result for the lifetime of the process. The mapping is
// assumed stable per run; ClearResolvedCache exists for tests.
func (s *Store) displayDirectory(dir string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if display, ok := s.resolved[dir]; ok {
		return display
	}

	display := dir
	canonical, isWorktree, err := s.resolve(dir)
	if err != nil {
		logging.Warnf("worktree resolution for %s: %v", dir, err)
	} else if isWorktree {
		display = canonical
	}
	s.resolved[dir] = display
	return display
}

// DisableFastScan routes every listing through the exhaustive walk,
// skipping the bulk scan entirely.
func (s *Store) DisableFastScan() {
	s.fast = s.fallback
}

// ClearResolvedCache drops the worktree resolution cache.
func (s *Store) ClearResolvedCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = make(map[string]string)
}

// FindLogFile locates the log file for a session id anywhere under the
// root. The second return is false when no session with that id exists.
func (s *Store) FindLogFile(sessionID string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(s.root, "*", sessionID+".jsonl"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// SubagentLog is one discovered subagent log file.
type SubagentLog struct {
	AgentID string
	Path    string
}

// FindSubagentLogs lists the subagent log files spawned by a session.
// They live under <project>/<sessionID>/subagents/, one file per agent
// named by its agent id. A session without that directory has none.
func (s *Store) FindSubagentLogs(sessionID string) []SubagentLog {
	parent, ok := s.FindLogFile(sessionID)
	if !ok {
		return nil
	}

	pattern := filepath.Join(filepath.Dir(parent), sessionID, "subagents", "*.jsonl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}

	subagents := make([]SubagentLog, 0, len(matches))
	for _, match := range matches {
		subagents = append(subagents, SubagentLog{
			AgentID: sessionIDFromPath(match),
			Path:    match,
		})
	}
	return subagents
}

// EncodeProjectDir converts a working directory path into the on-disk
// folder name used by the session runner.
func EncodeProjectDir(path string) string {
	return strings.ReplaceAll(path, "/", "-")
}

// DecodeProjectDir reverses EncodeProjectDir. Path segments that
// themselves contain dashes are indistinguishable in this encoding;
// that is a property of the store format.
func DecodeProjectDir(name string) string {
	return strings.ReplaceAll(name, "-", "/")
}

func sessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}
