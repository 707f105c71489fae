package policy

import (
	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const partition = "aws"

// buildARN joins the ARN fields without validating them. Empty or malformed
// inputs produce malformed ARNs.
func buildARN(service, region, account, resource string) string {
	return arn.ARN{
		Partition: partition,
		Service:   service,
		Region:    region,
		AccountID: account,
		Resource:  resource,
	}.String()
}

// mapARNs applies template to each name, preserving order and length.
func mapARNs(names []string, template func(name string) string) Value {
	arns := make([]string, 0, len(names))
	for _, name := range names {
		arns = append(arns, template(name))
	}
	return List(arns...)
}

// functionPrefix is the name prefix of every Lambda function the deployment owns.
func functionPrefix(projectName, stage string) string {
	return projectName + "-" + stage + "-"
}

func functionARN(region, account, projectName, stage string) string {
	return buildARN("lambda", region, account, "function:"+functionPrefix(projectName, stage)+"*")
}

func ruleARN(region, account, rule string) string {
	return buildARN("events", region, account, "rule/"+rule)
}

func logGroupARN(region, account, group string) string {
	return buildARN("logs", region, account, "log-group:"+group)
}
