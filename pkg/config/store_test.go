package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	want := Configuration{
		ProjectNumber: "123456",
		Location:      "eu",
		EngineID:      "sales-engine",
		AssistantID:   "default_assistant",
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	config, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if config != (Configuration{}) {
		t.Errorf("config = %+v, want zero value", config)
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Save(Configuration{ProjectNumber: "123456", Location: "us", EngineID: "e1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != fileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contents = %v, want only %s", names, fileName)
	}
}

func TestConfigurationValidate(t *testing.T) {
	for _, tt := range []struct {
		name    string
		config  Configuration
		wantErr bool
	}{
		{"complete", Configuration{ProjectNumber: "1", Location: "us", EngineID: "e"}, false},
		{"global location", Configuration{ProjectNumber: "1", Location: "global", EngineID: "e"}, false},
		{"missing project", Configuration{Location: "us", EngineID: "e"}, true},
		{"bad location", Configuration{ProjectNumber: "1", Location: "asia", EngineID: "e"}, true},
		{"missing engine", Configuration{ProjectNumber: "1", Location: "us"}, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaultsAssistant(t *testing.T) {
	config := Configuration{ProjectNumber: "1", Location: "us", EngineID: "e"}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if config.AssistantID != "default_assistant" {
		t.Errorf("assistant_id = %q", config.AssistantID)
	}
}
