package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/scanform/scanform/pkg/errors"
	"github.com/scanform/scanform/pkg/layout"
)

// cacheDir returns the artifact cache directory, creating nothing.
// Defaults to $XDG_CACHE_HOME/scanform (or the platform equivalent);
// SCANFORM_CACHE_DIR overrides it.
func cacheDir() (string, error) {
	if dir := os.Getenv("SCANFORM_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "locate user cache directory")
	}
	return filepath.Join(base, "scanform"), nil
}

// loadGeometry returns the reference geometry overlaid with the values
// from a TOML file. Fields absent from the file keep their defaults, so a
// config only needs to name what it changes.
func loadGeometry(path string) (layout.Config, error) {
	cfg := layout.Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse geometry config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}
