package analyzer

// High-risk permissions that should trigger warnings
var HighRiskPermissions = map[string]string{
	"iam:*":            "Full IAM access",
	"s3:*":             "Full S3 access",
	"dynamodb:*":       "Full DynamoDB access",
	"secretsmanager:*": "Full Secrets Manager access",
	"kms:*":            "Full KMS access",
	"ec2:*":            "Full EC2 access",
	"lambda:*":         "Full Lambda access",
	"sqs:*":            "Full SQS access",
	"sns:*":            "Full SNS access",
	"kinesis:*":        "Full Kinesis access",
	"*":                "Full account access",
}
