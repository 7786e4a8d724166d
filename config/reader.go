package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/rrtplan/logging"
)

// Read reads a problem from the given file. Environment variables referenced as $VAR or ${VAR} are
// substituted before decoding.
func Read(filePath string, logger logging.Logger) (*ProblemConfig, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a problem from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*ProblemConfig, error) {
	cfg := ProblemConfig{
		ConfigFilePath: originalPath,
	}
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode problem from json")
	}
	if err := cfg.Validate("problem"); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debugw("read problem",
			"path", originalPath,
			"dynamics", cfg.dynamicsName(),
			"obstacles", len(cfg.Obstacles),
			"obstacle_files", len(cfg.ObstacleFiles),
		)
	}
	return &cfg, nil
}
