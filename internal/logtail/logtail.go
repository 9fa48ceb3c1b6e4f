package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed logrus JSON line.
type Entry struct {
	Time      time.Time
	Level     logrus.Level
	Component string
	Message   string
	Error     string
	Fields    map[string]any
	// Raw is set when the line was not JSON; Level is then InfoLevel.
	Raw string
}

// Parse decodes a line written by logrus.JSONFormatter. Lines that are not
// JSON objects come back with only Raw set.
func Parse(line string) Entry {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{Level: logrus.InfoLevel, Raw: line}
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return Entry{Level: logrus.InfoLevel, Raw: line}
	}

	entry := Entry{Level: logrus.InfoLevel}
	if v, ok := fields[logrus.FieldKeyTime].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			entry.Time = t
		}
	}
	if v, ok := fields[logrus.FieldKeyLevel].(string); ok {
		if lvl, err := logrus.ParseLevel(v); err == nil {
			entry.Level = lvl
		}
	}
	entry.Message, _ = fields[logrus.FieldKeyMsg].(string)
	entry.Component, _ = fields["component"].(string)
	entry.Error, _ = fields[logrus.ErrorKey].(string)

	for _, k := range []string{logrus.FieldKeyTime, logrus.FieldKeyLevel, logrus.FieldKeyMsg, "component", logrus.ErrorKey} {
		delete(fields, k)
	}
	if len(fields) > 0 {
		entry.Fields = fields
	}
	return entry
}

// ParseLines parses lines and keeps entries at or above minLevel.
func ParseLines(lines []string, minLevel logrus.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		// logrus levels grow more verbose as the value increases.
		if e.Level > minLevel {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FieldString renders extra fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return strings.Join(parts, " ")
}
