package patcher

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// ConfigDir holds the per-environment config files, relative to the project root.
const ConfigDir = "config"

// AppConfig is the content of one config/app_config_<env>.json file.
// Field order is the key order of the written file.
type AppConfig struct {
	SecretKey    string `json:"secretKey"`
	BaseURL      string `json:"baseUrl"`
	XAPIKey      string `json:"xAPIKey"`
	OneSignalKey string `json:"oneSignalKey"`
}

// ConfigFileName returns the file name for env, e.g. "app_config_dev.json".
func ConfigFileName(env string) string {
	return "app_config_" + env + ".json"
}

// ConfigFilePath returns the slash-separated, project-relative path of the config file for env.
func ConfigFilePath(env string) string {
	return path.Join(ConfigDir, ConfigFileName(env))
}

// ConfigJSON renders the config file for env: secretKey is the upper-cased environment
// name and the remaining keys are empty placeholders.
func ConfigJSON(env string) ([]byte, error) {
	data, err := json.MarshalIndent(AppConfig{SecretKey: strings.ToUpper(env)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ConfigFileName(env), err)
	}

	return append(data, '\n'), nil
}
