// Package config loads and validates project configurations.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/berkguzel/slsperm/pkg/types"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/multierr"
	"sigs.k8s.io/yaml"
)

// accountIDPattern matches AWS account IDs. An unquoted YAML accountId with
// leading zeros decodes as a number and fails this check.
var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// Load reads a YAML or JSON project configuration from p. Unknown keys
// are rejected so that a misspelt feature flag does not silently drop
// statements from the policy.
//
// Load does not validate; call Validate once overrides are applied.
func Load(p string) (*types.Config, error) {
	path, err := homedir.Expand(p)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %q: %w", p, err)
	}

	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := new(types.Config)
	if err := yaml.Unmarshal(d, cfg, yaml.DisallowUnknownFields); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every inconsistency in cfg at once. The generator
// itself accepts any input; this is where the flag/array pairing it
// relies on is enforced.
func Validate(cfg *types.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var err error
	for _, f := range []struct {
		name, value string
	}{
		{"projectName", cfg.ProjectName},
		{"accountId", cfg.AccountID},
		{"stage", cfg.Stage},
		{"region", cfg.Region},
	} {
		if f.value == "" {
			err = multierr.Append(err, fmt.Errorf("%s is required", f.name))
		}
	}
	if cfg.AccountID != "" && !accountIDPattern.MatchString(cfg.AccountID) {
		err = multierr.Append(err, fmt.Errorf("accountId %q is not a 12-digit AWS account ID (quote it in YAML to keep leading zeros)", cfg.AccountID))
	}

	for _, f := range []struct {
		flag    string
		enabled bool
		array   string
		values  []string
	}{
		{"isS3Required", cfg.IsS3Required, "s3Array", cfg.S3Array},
		{"isSnsRequired", cfg.IsSnsRequired, "snsArray", cfg.SnsArray},
		{"isAlbRequired", cfg.IsAlbRequired, "albArray", cfg.AlbArray},
		{"isSqsRequired", cfg.IsSqsRequired, "sqsArray", cfg.SqsArray},
		{"isKinesisRequired", cfg.IsKinesisRequired, "kinesisArray", cfg.KinesisArray},
		{"isDynamoDbRequired", cfg.IsDynamoDbRequired, "dynamoDbArray", cfg.DynamoDbArray},
		{"isSsmRequired", cfg.IsSsmRequired, "ssmParamArray", cfg.SsmParamArray},
		{"isWarmUpPluginRequired", cfg.IsWarmUpPluginRequired, "warmUpPluginRuleArray", cfg.WarmUpPluginRuleArray},
	} {
		if f.enabled && len(f.values) == 0 {
			err = multierr.Append(err, fmt.Errorf("%s is set but %s is empty", f.flag, f.array))
		}
	}

	if cfg.IsDomainManagerRoute53Required && !cfg.IsDomainManagerRequired {
		err = multierr.Append(err, errors.New("isDomainManagerRoute53Required requires isDomainManagerRequired"))
	}

	return err
}
