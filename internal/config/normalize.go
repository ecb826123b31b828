package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeHashing()
	c.normalizeBackup()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		c.Paths.CatalogDir = defaultCatalogDir
	}
	if c.Paths.CatalogDir, err = expandPath(c.Paths.CatalogDir); err != nil {
		return fmt.Errorf("paths.catalog_dir: %w", err)
	}
	c.Paths.TrashDirName = strings.TrimSpace(c.Paths.TrashDirName)
	if c.Paths.TrashDirName == "" {
		c.Paths.TrashDirName = defaultTrashDirName
	}
	return nil
}

func (c *Config) normalizeScan() {
	c.Scan.ImageExtensions = normalizeExtensions(c.Scan.ImageExtensions, Default().Scan.ImageExtensions)
	c.Scan.VideoExtensions = normalizeExtensions(c.Scan.VideoExtensions, Default().Scan.VideoExtensions)
	c.Scan.SidecarExtensions = normalizeExtensions(c.Scan.SidecarExtensions, Default().Scan.SidecarExtensions)

	names := make([]string, 0, len(c.Scan.SidecarNames))
	for _, name := range c.Scan.SidecarNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = Default().Scan.SidecarNames
	}
	c.Scan.SidecarNames = names

	folders := make([]string, 0, len(c.Scan.GeneratedFolders))
	for _, folder := range c.Scan.GeneratedFolders {
		folder = strings.TrimSpace(folder)
		if folder != "" {
			folders = append(folders, folder)
		}
	}
	if len(folders) == 0 {
		folders = Default().Scan.GeneratedFolders
	}
	c.Scan.GeneratedFolders = folders
}

func normalizeExtensions(values, fallback []string) []string {
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		if !strings.HasPrefix(value, ".") {
			value = "." + value
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}
	if len(normalized) == 0 {
		return fallback
	}
	return normalized
}

func (c *Config) normalizeHashing() {
	if c.Hashing.Workers < 0 {
		c.Hashing.Workers = 0
	}
}

func (c *Config) normalizeBackup() {
	if c.Backup.PivotYear <= 0 || c.Backup.PivotYear > 99 {
		c.Backup.PivotYear = defaultPivotYear
	}
}

func (c *Config) normalizeCatalog() error {
	c.Catalog.Path = strings.TrimSpace(c.Catalog.Path)
	if c.Catalog.Path == "" {
		return nil
	}
	var err error
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
