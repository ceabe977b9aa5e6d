package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Server is the process-level runtime configuration, read from the
// environment with the PURRFECT_ prefix.
type Server struct {
	Addr        string `envconfig:"ADDR" default:":8420"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`
	BalancePath string `envconfig:"BALANCE_PATH" default:""`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	PlayerName  string `envconfig:"PLAYER_NAME" default:""`
}

// FromEnv reads the server configuration from the environment.
func FromEnv() (Server, error) {
	var s Server
	if err := envconfig.Process("purrfect", &s); err != nil {
		return Server{}, fmt.Errorf("read env config: %w", err)
	}
	return s, nil
}

// LoadBalance reads a YAML balance override file. An empty path returns the
// default balance; a missing file is an error so typos do not silently play
// on defaults.
func LoadBalance(path string) (Balance, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Balance{}, fmt.Errorf("read balance file: %w", err)
	}
	var bal Balance
	if err := yaml.Unmarshal(b, &bal); err != nil {
		return Balance{}, fmt.Errorf("parse balance file: %w", err)
	}
	bal.ApplyDefaults()
	return bal, nil
}
