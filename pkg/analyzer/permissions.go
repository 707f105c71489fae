package analyzer

import (
	"sort"
	"strings"

	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/types"
)

func (a *Analyzer) processPermissions(statements []types.StatementInfo) []types.PermissionDisplay {
	var displays []types.PermissionDisplay

	for i, stmt := range statements {
		if stmt.Effect != policy.EffectAllow {
			continue
		}

		for _, action := range stmt.Actions {
			for _, resource := range stmt.Resources {
				display := types.PermissionDisplay{
					Statement:    i,
					Action:       action,
					Resource:     resource,
					Effect:       stmt.Effect,
					IsBroad:      strings.Contains(action, "*") || strings.Contains(resource, "*"),
					IsHighRisk:   !stmt.HasCondition && isHighRiskPermission(action, resource),
					HasCondition: stmt.HasCondition,
				}
				displays = append(displays, display)
			}
		}
	}

	// Sort permissions (broad/high-risk ones first)
	sort.SliceStable(displays, func(i, j int) bool {
		if displays[i].IsHighRisk != displays[j].IsHighRisk {
			return displays[i].IsHighRisk
		}
		if displays[i].IsBroad != displays[j].IsBroad {
			return displays[i].IsBroad
		}
		return displays[i].Statement < displays[j].Statement
	})

	return displays
}

// isHighRiskPermission reports a full-service wildcard granted on every
// resource.
func isHighRiskPermission(action, resource string) bool {
	if resource != policy.AllResources {
		return false
	}
	return action == "*" || strings.HasSuffix(action, ":*")
}
