// Package config loads the lazyfind configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appDirName = "lazyfind"

// KeyBindings holds the key chords the selector is wired with. Every chord
// uses fzf key syntax (e.g. "alt-u", "ctrl-space").
type KeyBindings struct {
	ToggleHidden string // toggle hidden-file listing (files, grep)
	ToggleIgnore string // toggle ignore bypass (files, grep)
	ToggleFilter string // switch between rg reload and fzf matching (grep)
	ModeMenu     string // open the mode selection menu
	LastMode     string // jump back to the previously active mode
	ClearQuery   string
	ListUp       string
	ListDown     string
	PreviewUp    string
	PreviewDown  string
	HistoryPrev  string
	HistoryNext  string
}

// AppConfig defines the global lazyfind configuration options.
type AppConfig struct {
	Editor        string // editor open command; empty means probe TERM_PROGRAM/EDITOR
	DebugLog      string
	FzfPath       string
	RgPath        string
	BatPath       string
	History       bool   // persist per-mode query history
	PreviewWindow string // grep preview window layout override
	Keys          KeyBindings
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		FzfPath:       "fzf",
		RgPath:        "rg",
		BatPath:       "bat",
		History:       true,
		PreviewWindow: "up,60%,border-bottom,+{2}+3/3,~3",
		Keys: KeyBindings{
			ToggleHidden: "alt-u",
			ToggleIgnore: "alt-i",
			ToggleFilter: "ctrl-t",
			ModeMenu:     "ctrl-space",
			LastMode:     "ctrl-y",
			ClearQuery:   "ctrl-l",
			ListUp:       "ctrl-u",
			ListDown:     "ctrl-d",
			PreviewUp:    "ctrl-b",
			PreviewDown:  "ctrl-f",
			HistoryPrev:  "ctrl-p",
			HistoryNext:  "ctrl-n",
		},
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func stringValue(data map[string]any, key string) (string, bool) {
	raw, ok := data[key].(string)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

func parseKeyBindings(data map[string]any, keys *KeyBindings) {
	assign := map[string]*string{
		"toggle_hidden": &keys.ToggleHidden,
		"toggle_ignore": &keys.ToggleIgnore,
		"toggle_filter": &keys.ToggleFilter,
		"mode_menu":     &keys.ModeMenu,
		"last_mode":     &keys.LastMode,
		"clear_query":   &keys.ClearQuery,
		"list_up":       &keys.ListUp,
		"list_down":     &keys.ListDown,
		"preview_up":    &keys.PreviewUp,
		"preview_down":  &keys.PreviewDown,
		"history_prev":  &keys.HistoryPrev,
		"history_next":  &keys.HistoryNext,
	}
	for name, target := range assign {
		if chord, ok := stringValue(data, name); ok {
			*target = strings.ToLower(chord)
		}
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if editor, ok := stringValue(data, "editor"); ok {
		cfg.Editor = editor
	}
	if debugLog, ok := stringValue(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}
	if fzfPath, ok := stringValue(data, "fzf_path"); ok {
		cfg.FzfPath = fzfPath
	}
	if rgPath, ok := stringValue(data, "rg_path"); ok {
		cfg.RgPath = rgPath
	}
	if batPath, ok := stringValue(data, "bat_path"); ok {
		cfg.BatPath = batPath
	}
	if previewWindow, ok := stringValue(data, "preview_window"); ok {
		cfg.PreviewWindow = previewWindow
	}

	cfg.History = coerceBool(data["history"], cfg.History)

	if rawKeys, ok := data["keys"].(map[string]any); ok {
		parseKeyBindings(rawKeys, &cfg.Keys)
	}

	return cfg
}

// ConfigDir returns the directory lazyfind reads its configuration from.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// LoadConfig reads the application configuration from a YAML file. An empty
// configPath falls back to config.yaml/config.yml under the XDG config dir.
// A missing file is not an error; defaults are returned.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string

	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		configBase := ConfigDir()
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the config dir or an explicit flag
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
		}

		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// ApplyCLIOverrides applies --config=lf.key=value overrides on top of the
// loaded configuration. They take precedence over the config file.
func (cfg *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data := make(map[string]any)
	keyData := make(map[string]any)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config override: %q, expected format: lf.key=value", override)
		}

		fullKey := parts[0]
		value := parts[1]

		if !strings.HasPrefix(fullKey, "lf.") {
			return fmt.Errorf("config override key must start with 'lf.': %q", fullKey)
		}

		key := strings.TrimPrefix(fullKey, "lf.")
		if key == "" {
			return fmt.Errorf("empty config key in override: %q", override)
		}

		if chord, ok := strings.CutPrefix(key, "keys."); ok {
			keyData[chord] = value
			continue
		}
		data[key] = value
	}

	merged := parseConfigInto(cfg, data)
	parseKeyBindings(keyData, &merged.Keys)
	*cfg = *merged
	return nil
}

// parseConfigInto applies data on top of an existing config rather than the
// defaults; only keys present in data are touched.
func parseConfigInto(base *AppConfig, data map[string]any) *AppConfig {
	cfg := *base

	if editor, ok := stringValue(data, "editor"); ok {
		cfg.Editor = editor
	}
	if debugLog, ok := stringValue(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}
	if fzfPath, ok := stringValue(data, "fzf_path"); ok {
		cfg.FzfPath = fzfPath
	}
	if rgPath, ok := stringValue(data, "rg_path"); ok {
		cfg.RgPath = rgPath
	}
	if batPath, ok := stringValue(data, "bat_path"); ok {
		cfg.BatPath = batPath
	}
	if previewWindow, ok := stringValue(data, "preview_window"); ok {
		cfg.PreviewWindow = previewWindow
	}
	if _, ok := data["history"]; ok {
		cfg.History = coerceBool(data["history"], cfg.History)
	}

	return &cfg
}

// ExpandPath expands a leading ~ and environment variables in a path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
