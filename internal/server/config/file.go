package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DOCVAULT"

// parseFile overlays values from the config file at path (when non-empty)
// and from DOCVAULT_* environment variables onto config. Environment wins
// over the file. Any format viper understands (yaml, json, toml) is accepted.
func parseFile(config *Config, path string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for k, val := range config.settings() {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Slices are decoded in place; start from empty so a shorter list
	// does not keep trailing defaults.
	config.CORSOrigins = nil
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func (c *Config) settings() map[string]any {
	return map[string]any{
		"endpoint_addr_http":             c.EndpointAddrHTTP,
		"database_dsn":                   c.DatabaseDSN,
		"secret_key":                     c.SecretKey,
		"access_token_validity_duration": c.AccessTokenValidityDuration,
		"bcrypt_cost":                    c.BcryptCost,
		"cors_origins":                   c.CORSOrigins,
		"log_level":                      c.LogLevel,
		"log_format":                     c.LogFormat,
		"content_backend":                c.ContentBackend,
		"s3_root_user":                   c.S3RootUser,
		"s3_root_password":               c.S3RootPassword,
		"s3_bucket":                      c.S3Bucket,
		"s3_region":                      c.S3Region,
		"s3_base_endpoint":               c.S3BaseEndpoint,
		"max_open_conns":                 c.MaxOpenConns,
		"max_idle_conns":                 c.MaxIdleConns,
		"shutdown_timeout":               c.ShutdownTimeout,
	}
}
