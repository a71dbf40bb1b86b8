package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aims-dev/sectorburst/internal/model"
)

// IssueKind classifies a data-quality finding.
type IssueKind string

const (
	IssueUnresolvedCode     IssueKind = "unresolved-code"
	IssueNegativePercentage IssueKind = "negative-percentage"
	IssueDuplicateCode      IssueKind = "duplicate-code"
	IssueExcessPrecision    IssueKind = "excess-precision"
	IssueOverAllocation     IssueKind = "over-allocation"
	IssueEmptyName          IssueKind = "empty-name"
)

// Issue describes a single data-quality finding. Issues are advisory; the
// hierarchy build never rejects input because of them.
type Issue struct {
	Kind        IssueKind `json:"kind"`
	Code        string    `json:"code,omitempty"`
	Description string    `json:"description"`
}

func (i Issue) Error() string {
	if i.Code == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Description)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Kind, i.Code, i.Description)
}

// CodeChecker tests whether a sector code exists in the reference table.
type CodeChecker interface {
	Exists(code string) bool
}

var (
	hundred       = decimal.NewFromInt(100)
	maxDecimals   = int32(2)
	decimalFactor = decimal.New(1, maxDecimals)
)

// Check inspects allocations and returns every issue found, in input order,
// followed by whole-list findings.
func Check(allocs []model.Allocation, codes CodeChecker) []Issue {
	var issues []Issue

	seen := make(map[string]bool)
	reported := make(map[string]bool)
	total := decimal.Zero

	for _, a := range allocs {
		total = total.Add(a.Percentage)

		if !codes.Exists(a.Code) {
			issues = append(issues, Issue{
				Kind:        IssueUnresolvedCode,
				Code:        a.Code,
				Description: "sector code is not in the reference table and will be skipped",
			})
		}

		if a.Percentage.IsNegative() {
			issues = append(issues, Issue{
				Kind:        IssueNegativePercentage,
				Code:        a.Code,
				Description: fmt.Sprintf("percentage %s is negative", a.Percentage),
			})
		}

		scaled := a.Percentage.Mul(decimalFactor)
		if !scaled.Equal(scaled.Truncate(0)) {
			issues = append(issues, Issue{
				Kind:        IssueExcessPrecision,
				Code:        a.Code,
				Description: fmt.Sprintf("percentage %s has more than %d decimal places", a.Percentage, maxDecimals),
			})
		}

		if a.Name == "" {
			issues = append(issues, Issue{
				Kind:        IssueEmptyName,
				Code:        a.Code,
				Description: "allocation has no name",
			})
		}

		if seen[a.Code] && !reported[a.Code] {
			reported[a.Code] = true
			issues = append(issues, Issue{
				Kind:        IssueDuplicateCode,
				Code:        a.Code,
				Description: "sector code appears more than once; percentages will accumulate",
			})
		}
		seen[a.Code] = true
	}

	if total.GreaterThan(hundred) {
		issues = append(issues, Issue{
			Kind:        IssueOverAllocation,
			Description: fmt.Sprintf("allocations sum to %s%%, above 100%%", total),
		})
	}

	return issues
}

// HasKind reports whether issues contain at least one finding of kind.
func HasKind(issues []Issue, kind IssueKind) bool {
	for _, i := range issues {
		if i.Kind == kind {
			return true
		}
	}
	return false
}
