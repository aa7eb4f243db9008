package cli

import (
	"fmt"
	"os"

	"github.com/mcoot/wwfstate/internal/factory"
	redisstorage "github.com/mcoot/wwfstate/internal/storage/redis"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds CLI configuration
type Config struct {
	Storage  string
	RedisURL string
	Output   string
	Verbose  bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Storage:  getEnvOrDefault("WWFSTATE_STORAGE", factory.StorageTypeMemory),
		RedisURL: getEnvOrDefault("WWFSTATE_REDIS_URL", redisstorage.DefaultConfig().URL),
		Output:   getEnvOrDefault("WWFSTATE_OUTPUT", OutputText),
		Verbose:  false,
	}
}

// Validate checks flag values that cobra cannot
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output format %q: must be %s or %s", c.Output, OutputText, OutputJSON)
	}
	return nil
}

// FactoryConfig converts the CLI settings into application settings
func (c *Config) FactoryConfig() factory.Config {
	fc := factory.DefaultConfig()
	fc.StorageType = c.Storage
	if c.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
