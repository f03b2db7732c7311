package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveAtomic writes cfg to path via a temp file + rename, keeping the
// previous file as .bak. Used by the bootstrap to materialize the
// default config on first run.
func SaveAtomic(path string, cfg Config) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(bak)
		_ = os.Rename(path, bak)
	}

	return os.Rename(tmp, path)
}
