// Package config owns the persisted document: Steam credentials plus the
// serialized reminder list. The file is loaded once at startup and written
// back after every mutating operation.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	squireerrors "squire/internal/errors"
	"squire/internal/reminder"
)

// DefaultFileName is the document location under the user's home directory.
const DefaultFileName = ".squire-config.json"

// Document is the persisted assistant state.
type Document struct {
	SteamAPIKey string            `json:"steam_api_key"`
	SteamID     string            `json:"steam_id"`
	Reminders   []reminder.Record `json:"reminders"`
}

// HasCredentials reports whether both Steam credentials are present.
func (d Document) HasCredentials() bool {
	return d.SteamAPIKey != "" && d.SteamID != ""
}

type loadOptions struct {
	configPath string
	readFile   func(string) ([]byte, error)
	homeDir    func() (string, error)
}

// Option customizes load and save behaviour, mainly as a test seam.
type Option func(*loadOptions)

// WithPath overrides the document location.
func WithPath(path string) Option {
	return func(o *loadOptions) { o.configPath = path }
}

// WithReadFile overrides how file contents are read.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(o *loadOptions) { o.readFile = fn }
}

// WithHomeDir overrides home directory resolution.
func WithHomeDir(fn func() (string, error)) Option {
	return func(o *loadOptions) { o.homeDir = fn }
}

func resolve(opts ...Option) (loadOptions, string, error) {
	options := loadOptions{
		readFile: os.ReadFile,
		homeDir:  os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(&options)
	}

	configPath := options.configPath
	if configPath == "" {
		home, err := options.homeDir()
		if err != nil {
			return options, "", fmt.Errorf("resolve home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultFileName)
	}
	return options, configPath, nil
}

// Load reads the persisted document. A missing file yields an empty document;
// any other failure is returned so the caller can decide to proceed without
// saved state.
func Load(opts ...Option) (Document, error) {
	options, configPath, err := resolve(opts...)
	if err != nil {
		return Document{}, err
	}

	data, err := options.readFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("read config file: %w", err)
	}
	if len(data) == 0 {
		return Document{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse config file: %w", err)
	}
	return doc, nil
}

// Save writes the document durably: the content is written to a sibling temp
// file, synced to disk, then renamed over the target. IO failures come back
// transient (the next save may land); an encoding failure is permanent.
func Save(doc Document, opts ...Option) (string, error) {
	_, configPath, err := resolve(opts...)
	if err != nil {
		return "", err
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", squireerrors.NewPermanentError(fmt.Errorf("encode config: %w", err), "")
	}
	encoded = append(encoded, '\n')

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", squireerrors.NewTransientError(fmt.Errorf("ensure config directory: %w", err), "")
	}

	tmp, err := os.CreateTemp(filepath.Dir(configPath), ".squire-config-*.tmp")
	if err != nil {
		return "", squireerrors.NewTransientError(fmt.Errorf("create temp config file: %w", err), "")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return "", squireerrors.NewTransientError(fmt.Errorf("write config file: %w", err), "")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", squireerrors.NewTransientError(fmt.Errorf("sync config file: %w", err), "")
	}
	if err := tmp.Close(); err != nil {
		return "", squireerrors.NewTransientError(fmt.Errorf("close config file: %w", err), "")
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		return "", squireerrors.NewTransientError(fmt.Errorf("replace config file: %w", err), "")
	}

	return configPath, nil
}

// Verify re-reads the document and confirms the stored credentials match.
// The credentials path uses it after a save so a silently corrupt write is
// reported instead of discovered at the next poll.
func Verify(want Document, opts ...Option) error {
	got, err := Load(opts...)
	if err != nil {
		return err
	}
	if got.SteamAPIKey != want.SteamAPIKey || got.SteamID != want.SteamID {
		return fmt.Errorf("config verification failed: credentials do not match saved file")
	}
	return nil
}
