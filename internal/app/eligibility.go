package app

import (
	"fmt"
	"strconv"
	"strings"

	"campushire/internal/common"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/user"
)

// CheckEligibility decides whether a student may apply under the given
// constraints. Rules run in a fixed order and the first failure wins; no
// aggregation of multiple reasons. Pure, no side effects, shared by the
// apply workflow and the pre-apply detail view.
func CheckEligibility(student user.User, rules opportunity.Eligibility) error {
	if rules.MinCGR > 0 && student.CGR < rules.MinCGR {
		return common.NewError(common.CodeIneligible,
			fmt.Sprintf("Minimum CGR requirement is %s", formatCGR(rules.MinCGR)), nil)
	}
	if len(rules.Branches) > 0 && !contains(rules.Branches, student.Branch) {
		return common.NewError(common.CodeIneligible,
			fmt.Sprintf("This opportunity is only for %s branches", strings.Join(rules.Branches, ", ")), nil)
	}
	if len(rules.Batches) > 0 && !contains(rules.Batches, student.Batch) {
		return common.NewError(common.CodeIneligible,
			fmt.Sprintf("This opportunity is only for %s batches", strings.Join(rules.Batches, ", ")), nil)
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// formatCGR renders thresholds without trailing zeros, so 7 stays "7" and
// 7.5 stays "7.5".
func formatCGR(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
