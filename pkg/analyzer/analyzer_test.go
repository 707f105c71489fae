package analyzer

import (
	"testing"

	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() types.Config {
	return types.Config{
		ProjectName: "svc",
		AccountID:   "123456789012",
		Stage:       "dev",
		Region:      "eu-west-1",
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*types.Config)
		wantLevel map[string]int
	}{
		{
			name:      "baseline has no warnings",
			configure: func(*types.Config) {},
			wantLevel: map[string]int{},
		},
		{
			name: "scoped full-service grant",
			configure: func(c *types.Config) {
				c.IsDynamoDbRequired = true
				c.DynamoDbArray = []string{"users", "orders"}
			},
			wantLevel: map[string]int{"Medium": 2},
		},
		{
			name:      "conditioned wildcard resources",
			configure: func(c *types.Config) { c.IsSgRequired = true },
			wantLevel: map[string]int{"Low": 11},
		},
		{
			name:      "event source mapping is conditioned",
			configure: func(c *types.Config) { c.IsEsmEnabled = true },
			wantLevel: map[string]int{"Low": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.configure(&cfg)
			doc := policy.Generate(cfg)

			report := New().Analyze("svc-dev-eu-west-1-deployer", doc)
			assert.Equal(t, "svc-dev-eu-west-1-deployer", report.PolicyName)

			levels := map[string]int{}
			for _, w := range report.Warnings {
				levels[w.Level]++
			}
			assert.Equal(t, tt.wantLevel, levels)
		})
	}
}

func TestAnalyzer_PermissionRows(t *testing.T) {
	doc := policy.Generate(testConfig())
	report := New().Analyze("p", doc)

	want := 0
	for _, stmt := range doc.Statement {
		want += stmt.Action.Len() * stmt.Resource.Len()
	}
	require.Len(t, report.Permissions, want)

	for _, p := range report.Permissions {
		assert.False(t, p.IsHighRisk, p.String())
	}

	var passRole []types.PermissionDisplay
	for _, p := range report.Permissions {
		if p.Action == "iam:PassRole" {
			passRole = append(passRole, p)
		}
	}
	require.Len(t, passRole, 1)
	assert.True(t, passRole[0].HasCondition)
	assert.True(t, passRole[0].IsBroad)
	assert.Equal(t, 12, passRole[0].Statement)
}

func TestAnalyzer_HighRiskWarning(t *testing.T) {
	doc := policy.Document{
		Version: policy.Version,
		Statement: []policy.Statement{
			{Effect: policy.EffectAllow, Action: policy.One("iam:*"), Resource: policy.One("*")},
			{Effect: policy.EffectDeny, Action: policy.One("s3:*"), Resource: policy.One("*")},
		},
	}

	report := New().Analyze("risky", doc)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "High", report.Warnings[0].Level)
	assert.Equal(t, "iam:*", report.Warnings[0].Action)
	assert.Contains(t, report.Warnings[0].Description, "Full IAM access")
	assert.Len(t, report.HighRisk(), 1)
}

func TestAnalyzer_ConditionedRiskyWildcard(t *testing.T) {
	doc := policy.Document{
		Version: policy.Version,
		Statement: []policy.Statement{
			{
				Effect:    policy.EffectAllow,
				Action:    policy.One("iam:*"),
				Resource:  policy.One("*"),
				Condition: policy.Condition{"StringEquals": {"aws:RequestedRegion": "eu-west-1"}},
			},
		},
	}

	report := New().Analyze("conditioned", doc)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "Medium", report.Warnings[0].Level)
	assert.Contains(t, report.Warnings[0].Description, "on all resources, limited by condition (statement 0)")
	assert.NotContains(t, report.Warnings[0].Description, "scoped to")
}
