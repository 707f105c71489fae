package policy

// Per-service statement generators. Each one is pure and returns its
// statements in a fixed order; action lists are constants per service and
// resources are derived from the arguments only.

var bucketManagementActions = []string{
	"s3:GetBucketLocation",
	"s3:CreateBucket",
	"s3:DeleteBucket",
	"s3:ListBucket",
	"s3:GetBucketPolicy",
	"s3:PutBucketPolicy",
	"s3:ListBucketVersions",
	"s3:PutAccelerateConfiguration",
	"s3:GetEncryptionConfiguration",
	"s3:PutEncryptionConfiguration",
	"s3:DeleteBucketPolicy",
}

var albActions = []string{
	"elasticloadbalancing:RegisterTargets",
	"elasticloadbalancing:DescribeRules",
	"elasticloadbalancing:DeleteRule",
	"elasticloadbalancing:CreateTargetGroup",
	"elasticloadbalancing:ModifyTargetGroup",
	"elasticloadbalancing:ModifyTargetGroupAttributes",
	"elasticloadbalancing:ModifyRule",
	"elasticloadbalancing:ModifyListener",
	"elasticloadbalancing:AddTags",
	"elasticloadbalancing:DeleteTargetGroup",
	"elasticloadbalancing:DescribeTargetGroups",
	"elasticloadbalancing:DescribeTargetHealth",
	"elasticloadbalancing:CreateRule",
}

func allow(action, resource Value) Statement {
	return Statement{Effect: EffectAllow, Action: action, Resource: resource}
}

func allowWhen(action, resource Value, cond Condition) Statement {
	s := allow(action, resource)
	s.Condition = cond
	return s
}

// S3 grants bucket management on the named buckets.
func S3(buckets []string) []Statement {
	return []Statement{
		allow(List(bucketManagementActions...), mapARNs(buckets, func(b string) string {
			return buildARN("s3", "", "", b)
		})),
	}
}

// Kinesis grants full access to the named streams in any region and account.
func Kinesis(streams []string) []Statement {
	return []Statement{
		allow(One("kinesis:*"), mapARNs(streams, func(s string) string {
			return buildARN("kinesis", "*", "*", "stream/"+s)
		})),
	}
}

// SQS grants full access to the queues plus subscription filters on the
// Lambda and API Gateway log groups. Queue entries are expected in
// "{account}:{queue}" form.
func SQS(queues []string, region, account string) []Statement {
	return []Statement{
		allow(One("sqs:*"), mapARNs(queues, func(q string) string {
			// five segments only; arn.ARN would add an empty account field
			return "arn:" + partition + ":sqs:*:" + q
		})),
		allow(One("logs:PutSubscriptionFilter"), List(
			logGroupARN(region, account, "/aws/lambda/*"),
			logGroupARN(region, account, "/aws/api-gateway/*"),
		)),
	}
}

// ALB grants target group and rule management on the given load balancer
// or listener ARNs, which are used verbatim.
func ALB(arns []string) []Statement {
	return []Statement{
		allow(List(albActions...), mapARNs(arns, func(a string) string { return a })),
	}
}

// SecurityGroup grants the EC2 network actions Lambda needs inside a VPC.
// Mutations are limited to resources tagged with the service name and stage.
func SecurityGroup(projectName, stage string) []Statement {
	return []Statement{
		allow(List(
			"ec2:CreateTags",
			"ec2:DescribeSecurityGroups",
			"ec2:DescribeNetworkInterfaces",
			"ec2:DescribeSubnets",
			"ec2:DescribeVpcs",
			"ec2:DescribeDhcpOptions",
		), List(AllResources)),
		allowWhen(List(
			"ec2:AuthorizeSecurityGroupEgress",
			"ec2:RevokeSecurityGroupEgress",
			"ec2:AuthorizeSecurityGroupIngress",
			"ec2:RevokeSecurityGroupIngress",
			"ec2:DeleteTags",
			"ec2:DeleteSecurityGroup",
			"ec2:CreateNetworkInterfacePermission",
			"ec2:DeleteNetworkInterface",
			"ec2:DeleteNetworkInterfacePermission",
		), List(AllResources), Condition{
			"ForAllValues:StringEquals": {
				"ec2:ResourceTag/ServiceName": projectName,
				"ec2:ResourceTag/Stage":       stage,
			},
		}),
		allowWhen(List(
			"ec2:CreateSecurityGroup",
			"ec2:CreateNetworkInterface",
		), List(AllResources), Condition{
			"ForAllValues:StringEquals": {
				"ec2:RequestTag/ServiceName": projectName,
				"ec2:RequestTag/Stage":       stage,
			},
		}),
	}
}

// DynamoDB grants full access to the named tables in any region.
func DynamoDB(tables []string, account string) []Statement {
	return []Statement{
		allow(List("dynamodb:*"), mapARNs(tables, func(t string) string {
			return buildARN("dynamodb", "*", account, "table/"+t)
		})),
	}
}

// SNS grants full access to the named topics.
func SNS(topics []string, region, account string) []Statement {
	return []Statement{
		allow(List("sns:*"), mapARNs(topics, func(t string) string {
			return buildARN("sns", region, account, t)
		})),
	}
}

// APIGateway grants REST and HTTP API management in every region.
func APIGateway() []Statement {
	return []Statement{
		allow(List(
			"apigateway:GET",
			"apigateway:POST",
			"apigateway:PUT",
			"apigateway:DELETE",
			"apigateway:PATCH",
		), List(
			buildARN("apigateway", "*", "", "/apis*"),
			buildARN("apigateway", "*", "", "/restapis*"),
			buildARN("apigateway", "*", "", "/apikeys*"),
			buildARN("apigateway", "*", "", "/usageplans*"),
		)),
	}
}

// DomainManager grants custom domain and base path mapping management.
// The Route53 statements are included only when useRoute53 is set.
func DomainManager(region, account string, useRoute53 bool) []Statement {
	domains := func(suffix string) Value {
		return List(buildARN("apigateway", region, account, "/domainnames"+suffix))
	}

	statements := []Statement{
		allow(List("acm:ListCertificates"), List(AllResources)),
		allow(List("apigateway:GET", "apigateway:DELETE"), domains("/*")),
		allow(List("apigateway:GET", "apigateway:POST"), domains("/*/basepathmappings")),
		allow(List("apigateway:PATCH"), domains("/*/basepathmapping")),
		allow(List("apigateway:POST"), domains("")),
		allow(List("cloudformation:GET"), List(AllResources)),
		allow(List("cloudfront:UpdateDistribution"), List(AllResources)),
	}

	route53 := When(useRoute53, func() []Statement {
		return []Statement{
			allow(List(
				"route53:ListHostedZones",
				"route53:GetHostedZone",
				"route53:ListResourceRecordSets",
			), List(AllResources)),
			allow(List("route53:ChangeResourceRecordSets"), List(buildARN("route53", "", "", "hostedzone/*"))),
		}
	})
	statements = append(statements, route53.Statements()...)

	return append(statements, allow(
		List("iam:CreateServiceLinkedRole"),
		List(buildARN("iam", "", "", "role/aws-service-role/ops.apigateway.amazonaws.com/AWSServiceRoleForAPIGateway")),
	))
}

// WarmUpPlugin grants management of the warm-up plugin's EventBridge rules.
func WarmUpPlugin(region, account string, rules []string) []Statement {
	return []Statement{
		allow(List(
			"events:DescribeRule",
			"events:PutRule",
			"events:DeleteRule",
			"events:PutTargets",
			"events:RemoveTargets",
		), mapARNs(rules, func(r string) string {
			return ruleARN(region, account, r)
		})),
	}
}

// SSM grants parameter store reads. Parameter names are expected to carry
// their leading slash.
func SSM(region, account string, params []string) []Statement {
	return []Statement{
		allow(List("ssm:DescribeParameters"), One(AllResources)),
		allow(List(
			"ssm:GetParameter",
			"ssm:GetParameters",
			"ssm:GetParametersByPath",
		), mapARNs(params, func(p string) string {
			return buildARN("ssm", region, account, "parameter"+p)
		})),
	}
}

// EventSourceMapping grants creation of event source mappings targeting
// the deployment's own functions.
func EventSourceMapping(region, account, projectName, stage string) []Statement {
	return []Statement{
		allowWhen(One("lambda:CreateEventSourceMapping"), One(AllResources), Condition{
			"StringLike": {
				"lambda:FunctionArn": functionARN(region, account, projectName, stage),
			},
		}),
	}
}
