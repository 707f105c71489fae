package analyzer

import (
	"fmt"

	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/types"
)

// Analyzer reviews generated policies for broad and high-risk grants.
type Analyzer struct {
	highRisk map[string]string
}

func New() *Analyzer {
	return &Analyzer{highRisk: HighRiskPermissions}
}

// Analyze expands doc into one row per action/resource pair and collects
// warnings for the grants worth a second look.
func (a *Analyzer) Analyze(name string, doc policy.Document) types.Report {
	statements := make([]types.StatementInfo, 0, len(doc.Statement))
	for _, stmt := range doc.Statement {
		statements = append(statements, types.StatementInfo{
			Effect:       stmt.Effect,
			Actions:      stmt.Action.Strings(),
			Resources:    stmt.Resource.Strings(),
			HasCondition: len(stmt.Condition) > 0,
		})
	}

	return types.Report{
		PolicyName:  name,
		Permissions: a.processPermissions(statements),
		Warnings:    a.warnings(statements),
	}
}

func (a *Analyzer) warnings(statements []types.StatementInfo) []types.Warning {
	var warnings []types.Warning

	for i, stmt := range statements {
		if stmt.Effect != policy.EffectAllow {
			continue
		}

		for _, action := range stmt.Actions {
			for _, resource := range stmt.Resources {
				desc, risky := a.highRisk[action]
				switch {
				case risky && resource == policy.AllResources && !stmt.HasCondition:
					warnings = append(warnings, types.Warning{
						Level:       "High",
						Description: fmt.Sprintf("%s on all resources (statement %d)", desc, i),
						Action:      action,
					})
				case risky && resource == policy.AllResources:
					warnings = append(warnings, types.Warning{
						Level:       "Medium",
						Description: fmt.Sprintf("%s on all resources, limited by condition (statement %d)", desc, i),
						Action:      action,
					})
				case risky:
					warnings = append(warnings, types.Warning{
						Level:       "Medium",
						Description: fmt.Sprintf("%s scoped to %s (statement %d)", desc, resource, i),
						Action:      action,
					})
				case resource == policy.AllResources && stmt.HasCondition:
					warnings = append(warnings, types.Warning{
						Level:       "Low",
						Description: fmt.Sprintf("all resources, limited by condition (statement %d)", i),
						Action:      action,
					})
				}
			}
		}
	}

	return warnings
}
