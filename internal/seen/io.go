package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arome-jobs/jobwatch/internal/models"
)

// ReadStubs reads a JSON array of listing stubs from path.
func ReadStubs(path string) ([]models.ListingStub, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.ListingStub{}, nil
	}

	var stubs []models.ListingStub
	if err := json.Unmarshal(data, &stubs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if stubs == nil {
		return []models.ListingStub{}, nil
	}
	return stubs, nil
}

// ReadStubsAllowMissing treats a missing file as empty history.
func ReadStubsAllowMissing(path string) ([]models.ListingStub, error) {
	stubs, err := ReadStubs(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.ListingStub{}, nil
		}
		return nil, err
	}
	return stubs, nil
}

// WriteStubs writes stubs as pretty JSON, creating the parent directory if needed.
func WriteStubs(path string, stubs []models.ListingStub) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if stubs == nil {
		stubs = []models.ListingStub{}
	}
	data, err := json.MarshalIndent(stubs, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
