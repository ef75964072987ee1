package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// TOMLConfig is the on-disk configuration shape.
type TOMLConfig struct {
	HTTP    TOMLHTTPConfig    `toml:"http"`
	MongoDB TOMLMongoDBConfig `toml:"mongodb"`
	NATS    TOMLNATSConfig    `toml:"nats"`
	Redis   TOMLRedisConfig   `toml:"redis"`
	Auth    TOMLAuthConfig    `toml:"auth"`
	Notify  TOMLNotifyConfig  `toml:"notify"`
	DevMode bool              `toml:"dev_mode"`
}

type TOMLHTTPConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

type TOMLMongoDBConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type TOMLNATSConfig struct {
	URL     string `toml:"url"`
	Enabled *bool  `toml:"enabled"`
}

type TOMLRedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	ScheduleTTL string `toml:"schedule_ttl"`
	Enabled     *bool  `toml:"enabled"`
}

type TOMLAuthConfig struct {
	Issuer         string `toml:"issuer"`
	PrivateKeyPath string `toml:"private_key_path"`
	PublicKeyPath  string `toml:"public_key_path"`
	TokenTTL       string `toml:"token_ttl"`
}

type TOMLNotifyConfig struct {
	GuardianWebhookURL string `toml:"guardian_webhook_url"`
	Timeout            string `toml:"timeout"`
	Enabled            *bool  `toml:"enabled"`
}

// ConfigPaths lists the locations searched for a configuration file.
var ConfigPaths = []string{
	"config.toml",
	"classcore.toml",
	"./config/config.toml",
	"/etc/classcore/config.toml",
}

// LoadWithFile loads configuration from a TOML file when one is found,
// then applies environment variable overrides on top. CLASSCORE_CONFIG
// names an explicit file path.
func LoadWithFile() (*Config, error) {
	configPath := os.Getenv("CLASSCORE_CONFIG")
	if configPath == "" {
		for _, path := range ConfigPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	// Without a file, environment variables and defaults are the whole
	// configuration.
	if configPath == "" {
		return Load()
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a TOML file, filling unset
// fields with defaults.
func LoadFromFile(path string) (*Config, error) {
	var tomlCfg TOMLConfig
	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg, _ := Load()
	mergeTOML(cfg, &tomlCfg)
	return cfg, nil
}

// mergeTOML overlays file values onto the defaults. File values are
// later overridden by environment variables in applyEnvOverrides, which
// re-reads the environment so explicit env settings win.
func mergeTOML(cfg *Config, tc *TOMLConfig) {
	if tc.HTTP.Port != 0 {
		cfg.HTTP.Port = tc.HTTP.Port
	}
	if len(tc.HTTP.CORSOrigins) > 0 {
		cfg.HTTP.CORSOrigins = tc.HTTP.CORSOrigins
	}

	if tc.MongoDB.URI != "" {
		cfg.MongoDB.URI = tc.MongoDB.URI
	}
	if tc.MongoDB.Database != "" {
		cfg.MongoDB.Database = tc.MongoDB.Database
	}

	if tc.NATS.URL != "" {
		cfg.NATS.URL = tc.NATS.URL
	}
	if tc.NATS.Enabled != nil {
		cfg.NATS.Enabled = *tc.NATS.Enabled
	}

	if tc.Redis.Addr != "" {
		cfg.Redis.Addr = tc.Redis.Addr
	}
	if tc.Redis.Password != "" {
		cfg.Redis.Password = tc.Redis.Password
	}
	if tc.Redis.DB != 0 {
		cfg.Redis.DB = tc.Redis.DB
	}
	if d, err := time.ParseDuration(tc.Redis.ScheduleTTL); err == nil && tc.Redis.ScheduleTTL != "" {
		cfg.Redis.ScheduleTTL = d
	}
	if tc.Redis.Enabled != nil {
		cfg.Redis.Enabled = *tc.Redis.Enabled
	}

	if tc.Auth.Issuer != "" {
		cfg.Auth.Issuer = tc.Auth.Issuer
	}
	if tc.Auth.PrivateKeyPath != "" {
		cfg.Auth.PrivateKeyPath = tc.Auth.PrivateKeyPath
	}
	if tc.Auth.PublicKeyPath != "" {
		cfg.Auth.PublicKeyPath = tc.Auth.PublicKeyPath
	}
	if d, err := time.ParseDuration(tc.Auth.TokenTTL); err == nil && tc.Auth.TokenTTL != "" {
		cfg.Auth.TokenTTL = d
	}

	if tc.Notify.GuardianWebhookURL != "" {
		cfg.Notify.GuardianWebhookURL = tc.Notify.GuardianWebhookURL
	}
	if d, err := time.ParseDuration(tc.Notify.Timeout); err == nil && tc.Notify.Timeout != "" {
		cfg.Notify.Timeout = d
	}
	if tc.Notify.Enabled != nil {
		cfg.Notify.Enabled = *tc.Notify.Enabled
	}

	if tc.DevMode {
		cfg.DevMode = true
	}
}

// applyEnvOverrides re-applies environment variables that are explicitly
// set, so they win over file values.
func applyEnvOverrides(cfg *Config) {
	overrides := map[string]func(string){
		"CLASSCORE_HTTP_PORT": func(v string) { cfg.HTTP.Port = getEnvInt("CLASSCORE_HTTP_PORT", cfg.HTTP.Port) },
		"CLASSCORE_CORS_ORIGINS": func(v string) {
			cfg.HTTP.CORSOrigins = getEnvSlice("CLASSCORE_CORS_ORIGINS", cfg.HTTP.CORSOrigins)
		},
		"CLASSCORE_MONGODB_URI":      func(v string) { cfg.MongoDB.URI = v },
		"CLASSCORE_MONGODB_DATABASE": func(v string) { cfg.MongoDB.Database = v },
		"CLASSCORE_NATS_URL":         func(v string) { cfg.NATS.URL = v },
		"CLASSCORE_NATS_ENABLED": func(v string) {
			cfg.NATS.Enabled = getEnvBool("CLASSCORE_NATS_ENABLED", cfg.NATS.Enabled)
		},
		"CLASSCORE_REDIS_ADDR":     func(v string) { cfg.Redis.Addr = v },
		"CLASSCORE_REDIS_PASSWORD": func(v string) { cfg.Redis.Password = v },
		"CLASSCORE_REDIS_DB":       func(v string) { cfg.Redis.DB = getEnvInt("CLASSCORE_REDIS_DB", cfg.Redis.DB) },
		"CLASSCORE_REDIS_SCHEDULE_TTL": func(v string) {
			cfg.Redis.ScheduleTTL = getEnvDuration("CLASSCORE_REDIS_SCHEDULE_TTL", cfg.Redis.ScheduleTTL)
		},
		"CLASSCORE_REDIS_ENABLED": func(v string) {
			cfg.Redis.Enabled = getEnvBool("CLASSCORE_REDIS_ENABLED", cfg.Redis.Enabled)
		},
		"CLASSCORE_AUTH_ISSUER":           func(v string) { cfg.Auth.Issuer = v },
		"CLASSCORE_AUTH_PRIVATE_KEY_PATH": func(v string) { cfg.Auth.PrivateKeyPath = v },
		"CLASSCORE_AUTH_PUBLIC_KEY_PATH":  func(v string) { cfg.Auth.PublicKeyPath = v },
		"CLASSCORE_AUTH_TOKEN_TTL": func(v string) {
			cfg.Auth.TokenTTL = getEnvDuration("CLASSCORE_AUTH_TOKEN_TTL", cfg.Auth.TokenTTL)
		},
		"CLASSCORE_NOTIFY_GUARDIAN_URL": func(v string) { cfg.Notify.GuardianWebhookURL = v },
		"CLASSCORE_NOTIFY_TIMEOUT": func(v string) {
			cfg.Notify.Timeout = getEnvDuration("CLASSCORE_NOTIFY_TIMEOUT", cfg.Notify.Timeout)
		},
		"CLASSCORE_NOTIFY_ENABLED": func(v string) {
			cfg.Notify.Enabled = getEnvBool("CLASSCORE_NOTIFY_ENABLED", cfg.Notify.Enabled)
		},
		"CLASSCORE_DEV": func(v string) { cfg.DevMode = getEnvBool("CLASSCORE_DEV", cfg.DevMode) },
	}

	for key, apply := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			apply(value)
		}
	}
}

// WriteExampleConfig writes a commented example configuration file.
func WriteExampleConfig(path string) error {
	example := `# ClassCore Configuration
# Environment variables override these settings

[http]
port = 8080
cors_origins = ["http://localhost:4200"]

[mongodb]
uri = "mongodb://localhost:27017/?replicaSet=rs0&directConnection=true"
database = "classcore"

[nats]
url = "nats://localhost:4222"
enabled = true

[redis]
addr = "localhost:6379"
password = ""
db = 0
schedule_ttl = "5m"
enabled = false

[auth]
issuer = "classcore"
private_key_path = ""
public_key_path = ""
token_ttl = "30m"

[notify]
guardian_webhook_url = ""
timeout = "10s"
enabled = false

dev_mode = false
`

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(example), 0644)
}
