// Package config persists the explorer's tenant configuration between runs.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0nri/gemini-enterprise-api-explorer/pkg/gcs"
)

const fileName = "agentspace-config.json"

// Configuration is the tenant selection persisted by the explorer.
type Configuration struct {
	ProjectNumber string `json:"project_number"`
	Location      string `json:"location"`
	EngineID      string `json:"engine_id"`
	AssistantID   string `json:"assistant_id,omitempty"`
}

// Validate reports whether the configuration is complete. A missing assistant
// id falls back to the default assistant.
func (c *Configuration) Validate() error {
	if c.ProjectNumber == "" {
		return errors.New("project_number is required")
	}
	if !gcs.ValidLocation(c.Location) {
		return fmt.Errorf("invalid location %q, must be one of us, eu, global", c.Location)
	}
	if c.EngineID == "" {
		return errors.New("engine_id is required")
	}
	if c.AssistantID == "" {
		c.AssistantID = gcs.DefaultAssistantID
	}
	return nil
}

// Store loads and saves a Configuration.
type Store interface {
	Load() (Configuration, error)
	Save(Configuration) error
}

// FileStore keeps the configuration as a JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore builds a store rooted at dir. An empty dir resolves to
// the user's configuration directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user config dir: %w", err)
		}
		dir = filepath.Join(base, "agentspace-explorer")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// Path returns the configuration file location.
func (s *FileStore) Path() string { return filepath.Join(s.dir, fileName) }

// Load reads the stored configuration. A missing file yields a zero
// Configuration without error.
func (s *FileStore) Load() (Configuration, error) {
	var config Configuration

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("reading configuration: %w", err)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("decoding configuration: %w", err)
	}
	return config, nil
}

// Save writes the configuration atomically via a temp file and rename.
func (s *FileStore) Save(config Configuration) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing configuration: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing configuration: %w", err)
	}
	return nil
}
