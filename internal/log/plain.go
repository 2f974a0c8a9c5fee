package log

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

var _ Sink = (*plainSink)(nil)

var levelColors = map[Level]string{
	Trace: "\x1b[90m",
	Debug: "\x1b[34m",
	Info:  "\x1b[37m",
	Warn:  "\x1b[33m",
	Error: "\x1b[31m",
}

const resetColor = "\x1b[0m"

type plainSink struct {
	w     io.Writer
	color bool
}

func newPlainSink(w io.Writer, color bool) *plainSink {
	return &plainSink{w: w, color: color}
}

// Log entries as "level:scope: message key=value...".
func (t *plainSink) Log(entry Entry) error {
	var prefix strings.Builder
	prefix.WriteString(entry.Level.String())
	if scope, ok := entry.Attributes[scopeKey]; ok {
		prefix.WriteString(":")
		prefix.WriteString(scope)
	}
	line := prefix.String() + ": " + entry.Message
	if attrs := formatAttributes(entry.Attributes); attrs != "" {
		line += " " + attrs
	}
	if t.color {
		line = levelColors[entry.Level] + line + resetColor
	}
	_, err := fmt.Fprintln(t.w, line)
	if err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	return nil
}

func formatAttributes(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		if key == scopeKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+attributes[key])
	}
	return strings.Join(parts, " ")
}
