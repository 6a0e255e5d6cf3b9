package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/planrun/internal/config"
)

// CheckExisting returns an error if dir already holds a planrun.yml
func CheckExisting(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, config.DefaultPath)); err != nil {
		return nil
	}

	return fmt.Errorf("planrun already initialized\n\nFound existing: %s\n\nUse 'planrun init --force' to reinitialize (this will overwrite existing configuration)", config.DefaultPath)
}
