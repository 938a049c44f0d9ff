package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// timeLayout matches the prefix written by the logging package.
const timeLayout = "2006-01-02 15:04:05"

// Entry is one parsed log line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	// Raw is the line as written, used when parsing fails.
	Raw    string
	Parsed bool
}

var levelTokens = map[string]slog.Level{
	"DBG": slog.LevelDebug,
	"INF": slog.LevelInfo,
	"WRN": slog.LevelWarn,
	"ERR": slog.LevelError,
}

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

// ParseLine splits "2006-01-02 15:04:05 INF message k=v" into an Entry.
// Lines in any other shape come back unparsed at info level.
func ParseLine(line string) Entry {
	e := Entry{Raw: line, Level: slog.LevelInfo, Message: line}
	if len(line) < len(timeLayout)+5 {
		return e
	}
	ts, err := time.ParseInLocation(timeLayout, line[:len(timeLayout)], time.Local)
	if err != nil {
		return e
	}
	rest := strings.TrimPrefix(line[len(timeLayout):], " ")
	token, msg, _ := strings.Cut(rest, " ")
	level, ok := parseLevelToken(token)
	if !ok {
		return e
	}
	return Entry{Time: ts, Level: level, Message: msg, Raw: line, Parsed: true}
}

// tint writes offsets such as "INF+2" for custom levels.
func parseLevelToken(token string) (slog.Level, bool) {
	base, offset, hasOffset := strings.Cut(token, "+")
	if !hasOffset {
		base, offset, hasOffset = strings.Cut(token, "-")
		if hasOffset {
			offset = "-" + offset
		}
	}
	level, ok := levelTokens[base]
	if !ok {
		return 0, false
	}
	if hasOffset {
		var n int
		if _, err := fmt.Sscanf(offset, "%d", &n); err != nil {
			return 0, false
		}
		level += slog.Level(n)
	}
	return level, true
}

// Filter parses lines and keeps entries at or above min. Unparsed lines
// inherit the level of the entry before them, so multi-line messages stay
// together.
func Filter(lines []string, min slog.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	current := slog.LevelInfo
	for _, line := range lines {
		e := ParseLine(line)
		if e.Parsed {
			current = e.Level
		} else {
			e.Level = current
		}
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}
