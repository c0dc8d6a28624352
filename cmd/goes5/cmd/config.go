package cmd

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the optional .goes5rc.yaml file, searched in the working
// directory then $HOME. It belongs to the CLI only; the interpreter core
// takes no configuration.
type Config struct {
	// Strict forces strict mode on the outermost program, like the
	// --strict flag. The two are combined with OR: either one turns strict
	// mode on, and --strict=false does not override strict: true here.
	Strict bool `yaml:"strict"`

	// MaxArenaBytes is the allocation-accounting high-water mark reported
	// by `run --trace`.
	MaxArenaBytes int64 `yaml:"maxArenaBytes"`
}

const configFileName = ".goes5rc.yaml"

// loadConfig reads the first .goes5rc.yaml found; a missing file is not
// an error, a malformed one is.
func loadConfig() (*Config, error) {
	var paths []string
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, configFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configFileName))
	}

	cfg := &Config{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &exitError{code: 1, msg: path + ": " + err.Error()}
		}
		return cfg, nil
	}
	return cfg, nil
}
