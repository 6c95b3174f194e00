package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:5000"

// APIURL returns the base URL for the gosocial API.
// It can be overridden with the GOSOCIAL_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("GOSOCIAL_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gosocial", "session"), nil
}

// SaveSession stores the session cookie value for subsequent CLI commands.
func SaveSession(value string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o600)
}

// LoadSession returns the stored session cookie value, or "" when logged out.
func LoadSession() string {
	path, err := sessionPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ClearSession removes the stored session cookie.
func ClearSession() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
