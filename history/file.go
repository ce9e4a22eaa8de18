package history

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

const stampFormat = "2006-01-02 15:04:05"

var lineRe = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\] (.+)$`)

// AppendLine appends a timestamped line to the log file, creating it if
// necessary. Format: [YYYY-MM-DD HH:MM:SS] <text>
func AppendLine(path, text string) error {
	return appendLineAt(path, text, time.Now())
}

func appendLineAt(path, text string, ts time.Time) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "[%s] %s\n", ts.Format(stampFormat), text); err != nil {
		return fmt.Errorf("writing history line: %w", err)
	}
	return nil
}

// Load parses the log file and returns the last max entries, oldest-first.
// Lines that do not match the expected format are skipped. Display
// timestamps keep only HH:MM:SS; the date stays in the file.
func Load(path string, max int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := lineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		stamp := m[1]
		if i := strings.IndexByte(stamp, ' '); i >= 0 {
			stamp = stamp[i+1:]
		}
		entries = append(entries, Entry{Timestamp: stamp, Text: m[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if max > 0 && len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	return entries, nil
}
