package log

import (
	"fmt"
	"strings"
)

var levelNames = map[Level]string{
	Default: "default",
	Trace:   "trace",
	Debug:   "debug",
	Info:    "info",
	Warn:    "warn",
	Error:   "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for level, levelName := range levelNames {
		if levelName == name {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid log level", string(text))
}
