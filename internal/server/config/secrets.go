package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// newSecretsClient is swapped out in tests.
var newSecretsClient = func(ctx context.Context, region string) (secretsAPI, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// applySecrets fetches cfg.SecretsManagerID, a JSON object keyed like the
// environment variables, and applies the JWT secrets and DSN it contains.
// It does nothing when no secret id is configured.
func applySecrets(ctx context.Context, cfg *Config) error {
	if cfg.SecretsManagerID == "" {
		return nil
	}

	client, err := newSecretsClient(ctx, cfg.SecretsManagerRegion)
	if err != nil {
		return err
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.SecretsManagerID),
	})
	if err != nil {
		return fmt.Errorf("fetch secret %s: %w", cfg.SecretsManagerID, err)
	}

	var payload []byte
	switch {
	case out.SecretString != nil:
		payload = []byte(*out.SecretString)
	case len(out.SecretBinary) > 0:
		payload = out.SecretBinary
	default:
		return fmt.Errorf("secret %s has no payload", cfg.SecretsManagerID)
	}

	var kv map[string]string
	if err := json.Unmarshal(payload, &kv); err != nil {
		return fmt.Errorf("parse secret %s: %w", cfg.SecretsManagerID, err)
	}

	for key, dst := range map[string]*string{
		envAccessSecret:  &cfg.AccessSecret,
		envRefreshSecret: &cfg.RefreshSecret,
		envDatabaseDSN:   &cfg.DatabaseDSN,
	} {
		if v := kv[key]; v != "" {
			*dst = v
		}
	}
	return nil
}
