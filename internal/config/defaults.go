package config

const (
	defaultLogDir       = "~/.local/share/mediasort/logs"
	defaultCatalogDir   = "~/.local/share/mediasort"
	defaultTrashDirName = ".mediasort-trash"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultPivotYear    = 50
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:       defaultLogDir,
			CatalogDir:   defaultCatalogDir,
			TrashDirName: defaultTrashDirName,
		},
		Scan: Scan{
			ImageExtensions: []string{
				".jpg", ".jpeg", ".png", ".gif", ".heic", ".heif", ".tiff",
			},
			VideoExtensions: []string{
				".mp4", ".mov", ".avi", ".mkv", ".lrv", ".3gp", ".m2ts", ".webm", ".wmv",
			},
			SidecarNames:      []string{"thumbs.db"},
			SidecarExtensions: []string{".aae", ".modd", ".moff"},
			GeneratedFolders:  []string{"Screenshots", "ScreenRecordings", "Memes"},
		},
		Hashing: Hashing{
			Workers: 0,
		},
		Backup: Backup{
			PivotYear: defaultPivotYear,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
