package secrets

import (
	"context"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultProvider reads secrets from HashiCorp Vault KV v2.
type VaultProvider struct {
	client *vault.Client
	path   string
}

func NewVaultProvider(cfg *Config) (*VaultProvider, error) {
	if cfg.VaultAddr == "" {
		return nil, fmt.Errorf("%w: vault address is required", ErrProviderError)
	}

	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.VaultAddr

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if cfg.VaultToken != "" {
		client.SetToken(cfg.VaultToken)
	}
	if cfg.VaultNamespace != "" {
		client.SetNamespace(cfg.VaultNamespace)
	}

	path := cfg.VaultPath
	if path == "" {
		path = "secret/data/classcore"
	}

	return &VaultProvider{
		client: client,
		path:   strings.TrimSuffix(path, "/"),
	}, nil
}

// Get reads the "value" field of the secret stored under the configured
// path plus key.
func (p *VaultProvider) Get(ctx context.Context, key string) (string, error) {
	secret, err := p.client.KVv2("secret").Get(ctx, p.relativePath(key))
	if err != nil {
		if strings.Contains(err.Error(), "secret not found") {
			return "", ErrSecretNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrProviderError, err)
	}
	if secret == nil || secret.Data == nil {
		return "", ErrSecretNotFound
	}

	if value, ok := secret.Data["value"].(string); ok {
		return value, nil
	}
	return "", ErrSecretNotFound
}

func (p *VaultProvider) Name() string {
	return "vault"
}

// relativePath strips the mount prefix; the KVv2 helper re-adds it.
func (p *VaultProvider) relativePath(key string) string {
	path := p.path + "/" + key
	path = strings.TrimPrefix(path, "secret/data/")
	return strings.TrimPrefix(path, "secret/")
}
