package policy

import (
	"github.com/berkguzel/slsperm/pkg/types"
)

// Generate builds the deployment policy for cfg: the baseline every
// deployment needs followed by the statements of each enabled feature.
// It never fails; a feature enabled with no resource names yields a
// statement with an empty Resource list.
func Generate(cfg types.Config) Document {
	var statements []Statement
	for _, opt := range contributions(cfg) {
		statements = append(statements, opt.Statements()...)
	}

	return Document{
		Version:   Version,
		Statement: statements,
	}
}

func contributions(cfg types.Config) []Option {
	region, account := cfg.Region, cfg.AccountID

	opts := []Option{Some(baselineHead(cfg)...)}
	opts = append(opts, deploymentBucket(cfg.ProjectName, cfg.DeploymentBucket)...)
	opts = append(opts, Some(baselineTail(cfg)...))

	return append(opts,
		When(cfg.IsS3Required, func() []Statement { return S3(cfg.S3Array) }),
		When(cfg.IsSnsRequired, func() []Statement { return SNS(cfg.SnsArray, region, account) }),
		When(cfg.IsApiGWRequired, APIGateway),
		When(cfg.IsSgRequired, func() []Statement { return SecurityGroup(cfg.ProjectName, cfg.Stage) }),
		When(cfg.IsAlbRequired, func() []Statement { return ALB(cfg.AlbArray) }),
		When(cfg.IsSqsRequired, func() []Statement { return SQS(cfg.SqsArray, region, account) }),
		When(cfg.IsKinesisRequired, func() []Statement { return Kinesis(cfg.KinesisArray) }),
		When(cfg.IsDynamoDbRequired, func() []Statement { return DynamoDB(cfg.DynamoDbArray, account) }),
		When(cfg.IsSsmRequired, func() []Statement { return SSM(region, account, cfg.SsmParamArray) }),
		When(cfg.IsEsmEnabled, func() []Statement {
			return EventSourceMapping(region, account, cfg.ProjectName, cfg.Stage)
		}),
		When(cfg.IsDomainManagerRequired, func() []Statement {
			return DomainManager(region, account, cfg.IsDomainManagerRoute53Required)
		}),
		When(cfg.IsWarmUpPluginRequired, func() []Statement {
			return WarmUpPlugin(region, account, cfg.WarmUpPluginRuleArray)
		}),
	)
}

// baselineHead covers CloudFormation and Lambda reads, up to the
// deployment bucket statements.
func baselineHead(cfg types.Config) []Statement {
	region, account := cfg.Region, cfg.AccountID
	stack := cfg.ProjectName + "-" + cfg.Stage

	return []Statement{
		allow(List(
			"cloudformation:List*",
			"cloudformation:Get*",
			"cloudformation:ValidateTemplate",
		), List(AllResources)),
		allow(List(
			"cloudformation:CreateStack",
			"cloudformation:CreateUploadBucket",
			"cloudformation:DeleteStack",
			"cloudformation:Describe*",
			"cloudformation:UpdateStack",
		), List(buildARN("cloudformation", region, account, "stack/"+stack+"/*"))),
		allow(List(
			"lambda:Get*",
			"lambda:List*",
			"lambda:CreateFunction",
		), List(functionARN(region, account, cfg.ProjectName, cfg.Stage))),
	}
}

// deploymentBucket selects exactly one of the two bucket variants. A named
// bucket only needs object access; otherwise the tool manages its own
// bucket matching the serverlessdeploy name pattern.
func deploymentBucket(projectName, bucket string) []Option {
	objectActions := List("s3:PutObject", "s3:GetObject", "s3:DeleteObject")
	managed := List(buildARN("s3", "", "", projectName+"*serverlessdeploy*"))

	return []Option{
		When(bucket == "", func() []Statement {
			return []Statement{
				allow(List(bucketManagementActions...), managed),
				allow(objectActions, managed),
			}
		}),
		When(bucket != "", func() []Statement {
			return []Statement{
				allow(objectActions, List(buildARN("s3", "", "", bucket+"/*"))),
			}
		}),
	}
}

// baselineTail covers Lambda updates, CloudWatch, EventBridge and the
// function execution role.
func baselineTail(cfg types.Config) []Statement {
	region, account := cfg.Region, cfg.AccountID
	stack := cfg.ProjectName + "-" + cfg.Stage
	functions := functionARN(region, account, cfg.ProjectName, cfg.Stage)
	logGroup := logGroupARN(region, account, "/aws/lambda/"+stack+"*")
	logStreams := logGroupARN(region, account, "/aws/lambda/"+stack+"*:log-stream:*")
	rules := ruleARN(region, account, functionPrefix(cfg.ProjectName, cfg.Stage)+"*")

	return []Statement{
		allow(List(
			"lambda:AddPermission",
			"lambda:CreateAlias",
			"lambda:DeleteFunction",
			"lambda:InvokeFunction",
			"lambda:PublishVersion",
			"lambda:RemovePermission",
			"lambda:Update*",
		), List(functions)),
		allow(List("cloudwatch:GetMetricStatistics"), List(AllResources)),
		allow(List(
			"logs:CreateLogGroup",
			"logs:CreateLogStream",
			"logs:DeleteLogGroup",
		), List(logStreams, logGroup)),
		allow(List("logs:PutLogEvents"), List(logStreams)),
		allow(List(
			"logs:DescribeLogStreams",
			"logs:DescribeLogGroups",
			"logs:FilterLogEvents",
		), List(logGroup)),
		allow(List("events:Put*", "events:Remove*", "events:Delete*"), List(rules)),
		allow(List("events:DescribeRule"), List(rules)),
		allowWhen(List("iam:PassRole"), List(buildARN("iam", "", account, "role/*")), Condition{
			"StringEquals": {"iam:PassedToService": "lambda.amazonaws.com"},
		}),
		allow(List(
			"iam:GetRole",
			"iam:CreateRole",
			"iam:PutRolePolicy",
			"iam:DeleteRolePolicy",
			"iam:DeleteRole",
		), List(buildARN("iam", "", account, "role/"+LambdaRoleName(cfg)))),
	}
}

// LambdaRoleName is the execution role the deployment tool creates for
// the project's functions.
func LambdaRoleName(cfg types.Config) string {
	return cfg.ProjectName + "-" + cfg.Stage + "-" + cfg.Region + "-lambdaRole"
}

// DefaultPolicyName names the generated deployer policy when the caller
// does not choose one.
func DefaultPolicyName(cfg types.Config) string {
	return cfg.ProjectName + "-" + cfg.Stage + "-" + cfg.Region + "-deployer"
}
