package ledger

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// GlobalReturnResult reports the outcome of a global return application.
// Each user's mutation is independent, so failures are collected rather than
// aborting the run.
type GlobalReturnResult struct {
	Applied int             `json:"applied"`
	Failed  []string        `json:"failed,omitempty"`
	Total   decimal.Decimal `json:"total_credited"`
}

// ApplyGlobalReturn applies the same percentage to every non-admin user with
// invested principal. Users are processed one at a time, each in its own
// database transaction.
func ApplyGlobalReturn(ctx context.Context, rate decimal.Decimal) (GlobalReturnResult, error) {
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(oneHundred) {
		return GlobalReturnResult{}, ErrInvalidRate
	}

	rows, err := db.Conn.Query(ctx,
		`SELECT id FROM users WHERE is_admin = FALSE AND total_invested > 0`,
	)
	if err != nil {
		return GlobalReturnResult{}, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return GlobalReturnResult{}, err
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return GlobalReturnResult{}, err
	}
	if len(userIDs) == 0 {
		return GlobalReturnResult{}, ErrNoInvestment
	}

	description := fmt.Sprintf("Global daily return %s%% on invested amount", rate.String())

	result := GlobalReturnResult{Total: decimal.Zero}
	for _, id := range userIDs {
		credited, err := ApplyReturn(ctx, id, rate, description)
		if err != nil {
			log.Printf("global return: user %s skipped: %v", id, err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Applied++
		result.Total = result.Total.Add(credited)
	}
	return result, nil
}
