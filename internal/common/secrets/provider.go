// Package secrets resolves deployment secrets (database URI, signing
// keys, webhook credentials) from a configurable backend.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrProviderError  = errors.New("provider error")
)

// Provider is the read surface over a secret backend. ClassCore never
// writes secrets at runtime; provisioning them is an operational task.
type Provider interface {
	// Get retrieves a secret by key.
	Get(ctx context.Context, key string) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// Well-known secret keys.
const (
	KeyMongoURI        = "mongo-uri"
	KeyTokenPrivateKey = "token-private-key"
	KeyTokenPublicKey  = "token-public-key"
	KeyGuardianWebhook = "guardian-webhook-token"
)

// ProviderType selects the secret backend.
type ProviderType string

const (
	ProviderTypeEnv   ProviderType = "env"
	ProviderTypeVault ProviderType = "vault"
	ProviderTypeAWSSM ProviderType = "aws-sm"
	ProviderTypeGCPSM ProviderType = "gcp-sm"
)

// Config holds the secret backend configuration.
type Config struct {
	Provider ProviderType `json:"provider" toml:"provider"`

	// HashiCorp Vault settings.
	VaultAddr      string `json:"vaultAddr" toml:"vault_addr"`
	VaultToken     string `json:"vaultToken" toml:"vault_token"`
	VaultPath      string `json:"vaultPath" toml:"vault_path"`
	VaultNamespace string `json:"vaultNamespace" toml:"vault_namespace"`

	// AWS Secrets Manager settings.
	AWSRegion    string `json:"awsRegion" toml:"aws_region"`
	AWSPrefix    string `json:"awsPrefix" toml:"aws_prefix"`
	AWSEndpoint  string `json:"awsEndpoint" toml:"aws_endpoint"`
	AWSAccessKey string `json:"awsAccessKey" toml:"aws_access_key"`
	AWSSecretKey string `json:"awsSecretKey" toml:"aws_secret_key"`

	// GCP Secret Manager settings.
	GCPProject string `json:"gcpProject" toml:"gcp_project"`
	GCPPrefix  string `json:"gcpPrefix" toml:"gcp_prefix"`
}

// DefaultConfig returns the defaults: secrets from environment variables.
func DefaultConfig() *Config {
	return &Config{
		Provider:  ProviderTypeEnv,
		VaultPath: "secret/data/classcore",
		AWSPrefix: "/classcore/",
		GCPPrefix: "classcore-",
	}
}

// LoadConfigFromEnv builds the backend configuration from environment
// variables, falling back to the providers' own conventions (VAULT_ADDR,
// AWS_REGION, GOOGLE_CLOUD_PROJECT).
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if p := os.Getenv("CLASSCORE_SECRETS_PROVIDER"); p != "" {
		cfg.Provider = ProviderType(strings.ToLower(p))
	}

	if a := os.Getenv("CLASSCORE_SECRETS_VAULT_ADDR"); a != "" {
		cfg.VaultAddr = a
	} else if a := os.Getenv("VAULT_ADDR"); a != "" {
		cfg.VaultAddr = a
	}
	if t := os.Getenv("CLASSCORE_SECRETS_VAULT_TOKEN"); t != "" {
		cfg.VaultToken = t
	} else if t := os.Getenv("VAULT_TOKEN"); t != "" {
		cfg.VaultToken = t
	}
	if p := os.Getenv("CLASSCORE_SECRETS_VAULT_PATH"); p != "" {
		cfg.VaultPath = p
	}
	if n := os.Getenv("CLASSCORE_SECRETS_VAULT_NAMESPACE"); n != "" {
		cfg.VaultNamespace = n
	}

	if r := os.Getenv("CLASSCORE_SECRETS_AWS_REGION"); r != "" {
		cfg.AWSRegion = r
	} else if r := os.Getenv("AWS_REGION"); r != "" {
		cfg.AWSRegion = r
	}
	if p := os.Getenv("CLASSCORE_SECRETS_AWS_PREFIX"); p != "" {
		cfg.AWSPrefix = p
	}
	if e := os.Getenv("CLASSCORE_SECRETS_AWS_ENDPOINT"); e != "" {
		cfg.AWSEndpoint = e
	}

	if p := os.Getenv("CLASSCORE_SECRETS_GCP_PROJECT"); p != "" {
		cfg.GCPProject = p
	} else if p := os.Getenv("GOOGLE_CLOUD_PROJECT"); p != "" {
		cfg.GCPProject = p
	}
	if p := os.Getenv("CLASSCORE_SECRETS_GCP_PREFIX"); p != "" {
		cfg.GCPPrefix = p
	}

	return cfg
}

// NewProvider creates the configured secret provider.
func NewProvider(cfg *Config) (Provider, error) {
	if cfg == nil {
		cfg = LoadConfigFromEnv()
	}

	switch cfg.Provider {
	case ProviderTypeEnv:
		return NewEnvProvider("CLASSCORE_SECRET_"), nil
	case ProviderTypeVault:
		return NewVaultProvider(cfg)
	case ProviderTypeAWSSM:
		return NewAWSSecretsManagerProvider(cfg)
	case ProviderTypeGCPSM:
		return NewGCPSecretManagerProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown secrets provider: %s", cfg.Provider)
	}
}

// EnvProvider reads secrets from environment variables. The default for
// development and simple deployments.
type EnvProvider struct {
	prefix string
}

func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{prefix: prefix}
}

// Get resolves "mongo-uri" to the variable CLASSCORE_SECRET_MONGO_URI.
func (p *EnvProvider) Get(_ context.Context, key string) (string, error) {
	envKey := p.prefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	value := os.Getenv(envKey)
	if value == "" {
		return "", ErrSecretNotFound
	}
	return value, nil
}

func (p *EnvProvider) Name() string {
	return "env"
}
