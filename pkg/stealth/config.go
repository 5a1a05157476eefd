package stealth

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by ConfigFromEnv and LoadConfig.
const (
	EnvGroup = "STEALTH_GROUP"
	EnvHash  = "STEALTH_HASH"
)

// Config names the group and hash of a Suite. Both are required.
type Config struct {
	Group string `json:"group"`
	Hash  string `json:"hash"`
}

// ConfigFromEnv reads STEALTH_GROUP and STEALTH_HASH from the process
// environment.
func ConfigFromEnv() Config {
	return Config{
		Group: os.Getenv(EnvGroup),
		Hash:  os.Getenv(EnvHash),
	}
}

// LoadConfig reads STEALTH_GROUP and STEALTH_HASH from a dotenv file.
func LoadConfig(path string) (Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Config{}, wrap("LoadConfig", err)
	}
	return Config{Group: env[EnvGroup], Hash: env[EnvHash]}, nil
}

// Validate checks that both fields are set.
func (c Config) Validate() error {
	if c.Group == "" {
		return wrap("Config", fmt.Errorf("%w: %s is empty", ErrConfig, EnvGroup))
	}
	if c.Hash == "" {
		return wrap("Config", fmt.Errorf("%w: %s is empty", ErrConfig, EnvHash))
	}
	return nil
}

// Suite builds the configured suite.
func (c Config) Suite() (*Suite, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return NewSuiteByName(c.Group, c.Hash)
}
