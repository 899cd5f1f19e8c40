package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "QUILLPAD_"

// envSetter applies one environment value to the config.
type envSetter func(c *Config, val string) error

// envMapping maps variable names (without prefix) to setters.
var envMapping = map[string]envSetter{
	"DEBOUNCE_MS":       intSetter(func(c *Config) *int { return &c.Editor.DebounceMS }),
	"MAX_UNDO_ENTRIES":  intSetter(func(c *Config) *int { return &c.Editor.MaxUndoEntries }),
	"LINE_ENDING":       stringSetter(func(c *Config) *string { return &c.Editor.LineEnding }),
	"FONT_FAMILY":       stringSetter(func(c *Config) *string { return &c.Style.FontFamily }),
	"FONT_SIZE":         floatSetter(func(c *Config) *float64 { return &c.Style.FontSize }),
	"FONT_COLOR":        stringSetter(func(c *Config) *string { return &c.Style.FontColor }),
	"RECOVERY_ENABLED":  boolSetter(func(c *Config) *bool { return &c.Recovery.Enabled }),
	"RECOVERY_PATH":     stringSetter(func(c *Config) *string { return &c.Recovery.Path }),
	"RECOVERY_INTERVAL": intSetter(func(c *Config) *int { return &c.Recovery.IntervalSeconds }),
	"LOG_LEVEL":         stringSetter(func(c *Config) *string { return &c.Log.Level }),
	"LOG_PATH":          stringSetter(func(c *Config) *string { return &c.Log.Path }),
}

// ApplyEnv overrides settings from environment variables named
// prefix+KEY, e.g. QUILLPAD_FONT_SIZE=18.
// Empty string values are treated as valid values, not as unset.
func (c *Config) ApplyEnv(prefix string) error {
	for key, set := range envMapping {
		val, ok := os.LookupEnv(prefix + key)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return fmt.Errorf("%s%s: %w", prefix, key, err)
		}
	}
	return nil
}

// EnvKeys lists the recognised variable names with prefix applied.
func EnvKeys(prefix string) []string {
	keys := make([]string, 0, len(envMapping))
	for key := range envMapping {
		keys = append(keys, prefix+key)
	}
	return keys
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, val string) error {
		*field(c) = val
		return nil
	}
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(*Config) *float64) envSetter {
	return func(c *Config, val string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

// boolSetter accepts the same spellings as the rest of the tool:
// true/yes/on/1 and false/no/off/0.
func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, val string) error {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0":
			*field(c) = false
		default:
			return fmt.Errorf("invalid boolean %q", val)
		}
		return nil
	}
}
