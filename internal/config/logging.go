package config

type Logging struct {
	Development bool
	// File enables a rotating JSON log file next to stderr output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func NewLogging() (*Logging, error) {
	cfg := &Logging{
		Development: Development(),
		File:        lookupString("MINES_LOG_FILE", ""),
	}

	var err error
	if cfg.MaxSizeMB, err = lookupInt("MINES_LOG_MAX_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.MaxBackups, err = lookupInt("MINES_LOG_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}
	if cfg.MaxAgeDays, err = lookupInt("MINES_LOG_MAX_AGE", 28); err != nil {
		return nil, err
	}

	return cfg, nil
}
