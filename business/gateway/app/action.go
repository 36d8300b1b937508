package app

import (
	"fmt"

	"github.com/fd1az/aptos-arbitrage/internal/apperror"
)

// Action names an arbitrage operation on the generic endpoint.
type Action string

const (
	ActionGetCharges         Action = "getcharges"
	ActionIsProfitable       Action = "isprofitable"
	ActionPossibilities      Action = "possibilities"
	ActionOptimizeInvestment Action = "optimize_investment"
	ActionAnalyzeAmount      Action = "analyze_amount"
	ActionBreakeven          Action = "breakeven"
)

// ParseAction validates an action string. Unknown values are rejected with
// an error that names the offending value.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionGetCharges, ActionIsProfitable, ActionPossibilities,
		ActionOptimizeInvestment, ActionAnalyzeAmount, ActionBreakeven:
		return Action(s), nil
	}
	return "", apperror.Validation(apperror.CodeUnknownAction,
		fmt.Sprintf("unknown action: %q", s))
}
