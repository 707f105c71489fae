package aws

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/types"
)

const policyPath = "/"

// CreatePolicyInput wraps doc in the request body of IAM CreatePolicy, in
// the shape `aws iam create-policy --cli-input-json` accepts. The policy
// is tagged with the same ServiceName and Stage tags the security group
// statements match on.
func CreatePolicyInput(name string, cfg types.Config, doc policy.Document) (*iam.CreatePolicyInput, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy document: %w", err)
	}

	return &iam.CreatePolicyInput{
		PolicyName:     aws.String(name),
		PolicyDocument: aws.String(string(body)),
		Path:           aws.String(policyPath),
		Description: aws.String(fmt.Sprintf("Deployment permissions for %s-%s in %s",
			cfg.ProjectName, cfg.Stage, cfg.Region)),
		Tags: []iamtypes.Tag{
			{Key: aws.String("ServiceName"), Value: aws.String(cfg.ProjectName)},
			{Key: aws.String("Stage"), Value: aws.String(cfg.Stage)},
		},
	}, nil
}
