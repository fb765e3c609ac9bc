package conf

import (
	"encoding/json"
	"fmt"

	"github.com/bluenviron/pngme/internal/logger"
)

var logLevelNames = map[LogLevel]string{
	LogLevel(logger.Error): "error",
	LogLevel(logger.Warn):  "warn",
	LogLevel(logger.Info):  "info",
	LogLevel(logger.Debug): "debug",
}

// LogLevel is the minimum level of messages printed by pngme.
type LogLevel logger.Level

func parseLogLevel(name string) (LogLevel, error) {
	for l, n := range logLevelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("invalid log level: '%s'", name)
}

// MarshalJSON implements json.Marshaler.
func (d LogLevel) MarshalJSON() ([]byte, error) {
	name, ok := logLevelNames[d]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %d", d)
	}
	return json.Marshal(name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *LogLevel) UnmarshalJSON(b []byte) error {
	var in string
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	l, err := parseLogLevel(in)
	if err != nil {
		return err
	}

	*d = l
	return nil
}

// UnmarshalEnv implements env.Unmarshaler.
func (d *LogLevel) UnmarshalEnv(_ string, v string) error {
	l, err := parseLogLevel(v)
	if err != nil {
		return err
	}

	*d = l
	return nil
}
