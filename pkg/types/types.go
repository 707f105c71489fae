package types

import "fmt"

// Config describes one serverless deployment: who deploys it, where, and
// which AWS services it touches. Every feature flag is paired with the
// resource names its statements are scoped to.
type Config struct {
	ProjectName string `json:"projectName"`
	AccountID   string `json:"accountId"`
	Stage       string `json:"stage"`
	Region      string `json:"region"`

	// DeploymentBucket is an existing bucket to deploy into. When empty the
	// deployment tool provisions its own "{projectName}*serverlessdeploy*" bucket.
	DeploymentBucket string `json:"deploymentBucket,omitempty"`

	IsS3Required bool     `json:"isS3Required,omitempty"`
	S3Array      []string `json:"s3Array,omitempty"`

	IsSnsRequired bool     `json:"isSnsRequired,omitempty"`
	SnsArray      []string `json:"snsArray,omitempty"`

	IsApiGWRequired bool `json:"isApiGWRequired,omitempty"`
	IsSgRequired    bool `json:"isSgRequired,omitempty"`

	IsAlbRequired bool     `json:"isAlbRequired,omitempty"`
	AlbArray      []string `json:"albArray,omitempty"`

	IsSqsRequired bool     `json:"isSqsRequired,omitempty"`
	SqsArray      []string `json:"sqsArray,omitempty"`

	IsKinesisRequired bool     `json:"isKinesisRequired,omitempty"`
	KinesisArray      []string `json:"kinesisArray,omitempty"`

	IsDynamoDbRequired bool     `json:"isDynamoDbRequired,omitempty"`
	DynamoDbArray      []string `json:"dynamoDbArray,omitempty"`

	IsSsmRequired bool     `json:"isSsmRequired,omitempty"`
	SsmParamArray []string `json:"ssmParamArray,omitempty"`

	IsEsmEnabled bool `json:"isEsmEnabled,omitempty"`

	IsDomainManagerRequired        bool `json:"isDomainManagerRequired,omitempty"`
	IsDomainManagerRoute53Required bool `json:"isDomainManagerRoute53Required,omitempty"`

	IsWarmUpPluginRequired bool     `json:"isWarmUpPluginRequired,omitempty"`
	WarmUpPluginRuleArray  []string `json:"warmUpPluginRuleArray,omitempty"`
}

type PermissionDisplay struct {
	Statement    int // index into the document's Statement list
	Action       string
	Resource     string
	Effect       string
	IsBroad      bool
	IsHighRisk   bool
	HasCondition bool
}

func (p PermissionDisplay) String() string {
	return fmt.Sprintf("%s %s on %s (Broad: %t, High Risk: %t, Has Condition: %t)",
		p.Effect, p.Action, p.Resource, p.IsBroad, p.IsHighRisk, p.HasCondition)
}

type StatementInfo struct {
	Effect       string
	Actions      []string
	Resources    []string
	HasCondition bool
}

type Warning struct {
	Level       string // High, Medium, Low
	Description string
	Action      string
}

// Report is the review of one generated policy.
type Report struct {
	PolicyName  string
	Permissions []PermissionDisplay
	Warnings    []Warning
}

// HighRisk returns the permissions flagged broad or high risk.
func (r Report) HighRisk() []PermissionDisplay {
	var out []PermissionDisplay
	for _, p := range r.Permissions {
		if p.IsBroad || p.IsHighRisk {
			out = append(out, p)
		}
	}
	return out
}

func (r Report) String() string {
	return fmt.Sprintf("Policy: %s with %d permissions and %d warnings",
		r.PolicyName, len(r.Permissions), len(r.Warnings))
}
