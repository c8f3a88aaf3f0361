package sessions

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/db"
	"github.com/WolpertingerLabs/claude-code-ui-sub000/internal/logs"
)

// locator returns the log file paths for one page of sessions, newest
// first, plus the total session count across the store. The two
// implementations must agree on ordering and count for any corpus, so
// both derive the total from the files present on disk and sort on the
// same recency key: the latest record timestamp inside the log, or the
// file mtime when no record carries one (a session the runner just
// created, or a log with no parseable timestamps).
type locator interface {
	listPage(limit, offset int) ([]string, int, error)
}

type pageEntry struct {
	path string
	key  time.Time
}

// recencyKey normalizes a sort key. DuckDB timestamps carry microsecond
// precision, so both strategies truncate to that.
func recencyKey(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func sortEntries(entries []pageEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].key.Equal(entries[j].key) {
			return entries[i].key.After(entries[j].key)
		}
		return entries[i].path < entries[j].path
	})
}

func slicePage(entries []pageEntry, limit, offset int) ([]string, int) {
	total := len(entries)
	if offset >= total {
		return nil, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	paths := make([]string, 0, end-offset)
	for _, entry := range entries[offset:end] {
		paths = append(paths, entry.path)
	}
	return paths, total
}

// duckdbLocator is the fast path: one bulk scan over the whole store
// via DuckDB's newline-delimited JSON reader yields every file's latest
// record timestamp without reading the files in Go. Only record-less
// files need an mtime stat. The glob is exactly one directory deep,
// which keeps subagent logs out of the listing.
type duckdbLocator struct {
	root string
}

func (l *duckdbLocator) listPage(limit, offset int) ([]string, int, error) {
	files, err := filepath.Glob(filepath.Join(l.root, "*", "*.jsonl"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to enumerate session logs: %w", err)
	}
	if len(files) == 0 {
		return nil, 0, nil
	}

	database, err := db.GetDB()
	if err != nil {
		return nil, 0, err
	}

	// The glob is interpolated because read_json takes no placeholders;
	// single quotes in the root are doubled per SQL rules.
	glob := strings.ReplaceAll(filepath.Join(l.root, "*", "*.jsonl"), "'", "''")
	query := fmt.Sprintf(`
		SELECT filename, CAST(MAX(timestamp) AS TIMESTAMP)
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		GROUP BY filename
	`, glob)

	rows, err := database.Query(query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan session logs: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time)
	for rows.Next() {
		var path string
		var ts sql.NullTime
		if err := rows.Scan(&path, &ts); err != nil {
			continue
		}
		if ts.Valid {
			latest[path] = ts.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read session scan: %w", err)
	}

	entries := make([]pageEntry, 0, len(files))
	for _, path := range files {
		key, ok := latest[path]
		if !ok {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// The file disappeared between glob and stat.
				continue
			}
			key = info.ModTime()
		}
		entries = append(entries, pageEntry{path: path, key: recencyKey(key)})
	}
	sortEntries(entries)
	paths, total := slicePage(entries, limit, offset)
	return paths, total, nil
}

// walkLocator is the portable fallback: walk the whole store and read
// every session log for its latest record timestamp. O(corpus bytes)
// per call, a degraded mode, but it sorts on the same key as the bulk
// scan so pagination is identical.
type walkLocator struct {
	root string
}

func (l *walkLocator) listPage(limit, offset int) ([]string, int, error) {
	var entries []pageEntry

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees reduce the result, they don't fail it.
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".jsonl") {
			return nil
		}
		// Only <root>/<project>/<session>.jsonl counts as a session;
		// anything deeper is a subagent log.
		rel, relErr := filepath.Rel(l.root, path)
		if relErr != nil || strings.Count(rel, string(filepath.Separator)) != 1 {
			return nil
		}
		key, ok := logs.MaxTimestamp(path)
		if !ok {
			info, infoErr := d.Info()
			if infoErr != nil {
				return nil
			}
			key = info.ModTime()
		}
		entries = append(entries, pageEntry{path: path, key: recencyKey(key)})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk %s: %w", l.root, err)
	}

	sortEntries(entries)
	paths, total := slicePage(entries, limit, offset)
	return paths, total, nil
}
