// Package config reads the environment of the command-line tool.
package config

import (
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/gruntjs-updater/transifex-keyvaluejson/transifex"
)

const envPrefix = "transifex"

// Env is the process environment, read from TRANSIFEX_* variables.
type Env struct {
	BaseURL  string `split_words:"true" default:"https://www.transifex.com/api/2"`
	Username string
	Password string
	// RCFile defaults to ~/.transifexrc when empty.
	RCFile   string        `envconfig:"RC_FILE"`
	LogLevel zapcore.Level `split_words:"true" default:"info"`
}

// Load processes the environment into an Env.
func Load() (Env, error) {
	var env Env
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Env{}, err
	}
	if env.BaseURL == "" {
		env.BaseURL = transifex.DefaultBaseURL
	}
	return env, nil
}
