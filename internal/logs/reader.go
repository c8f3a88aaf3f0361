package logs

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

// ReadLogFile decodes every line of a session log file. Malformed and
// blank lines are skipped; a missing file is reported via the error so
// callers can treat it as an empty result.
func ReadLogFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := newScanner(file)
	for scanner.Scan() {
		if rec, ok := DecodeRecord(scanner.Bytes()); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scan session log: %w", err)
	}
	return records, nil
}

// FirstTimestamp returns the timestamp of the earliest decodable record
// in the file, reading only as far as needed.
func FirstTimestamp(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := newScanner(file)
	for scanner.Scan() {
		rec, ok := DecodeRecord(scanner.Bytes())
		if ok && rec.Timestamp != "" {
			return rec.Timestamp, true
		}
	}
	return "", false
}

// MaxTimestamp returns the latest record timestamp in the file. The
// runner appends in order, but the whole file is scanned so one
// backfilled record cannot skew the result.
func MaxTimestamp(path string) (time.Time, bool) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer file.Close()

	var latest time.Time
	found := false
	scanner := newScanner(file)
	for scanner.Scan() {
		rec, ok := DecodeRecord(scanner.Bytes())
		if !ok || rec.Timestamp == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			continue
		}
		if !found || t.After(latest) {
			latest, found = t, true
		}
	}
	return latest, found
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Allow large payloads such as pasted file contents.
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}
