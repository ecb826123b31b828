package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateHashing(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.ContainsRune(c.Paths.TrashDirName, filepath.Separator) {
		return fmt.Errorf("paths.trash_dir_name must be a bare folder name, got %q", c.Paths.TrashDirName)
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.ImageExtensions) == 0 {
		return errors.New("scan.image_extensions must not be empty")
	}
	if len(c.Scan.VideoExtensions) == 0 {
		return errors.New("scan.video_extensions must not be empty")
	}
	for _, ext := range append(append([]string{}, c.Scan.ImageExtensions...), c.Scan.VideoExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("scan extensions must start with a dot, got %q", ext)
		}
	}
	return nil
}

func (c *Config) validateHashing() error {
	if c.Hashing.Workers > 256 {
		return fmt.Errorf("hashing.workers must be at most 256, got %d", c.Hashing.Workers)
	}
	return nil
}

func (c *Config) validateBackup() error {
	if c.Backup.PivotYear < 1 || c.Backup.PivotYear > 99 {
		return fmt.Errorf("backup.pivot_year must be between 1 and 99, got %d", c.Backup.PivotYear)
	}
	return nil
}
