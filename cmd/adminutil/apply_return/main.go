package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
	"github.com/dayo-adewuyi/growvest/internal/ledger"
)

// Applies a daily return percentage to every investor, or to a single user
// when -user is given. Meant to be run from cron once per day.
func main() {
	rateStr := flag.String("rate", "", "Daily return percentage, e.g. 1.5")
	userID := flag.String("user", "", "Apply to a single user id instead of all investors")
	flag.Parse()

	if *rateStr == "" {
		log.Fatalf("usage: go run cmd/adminutil/apply_return/main.go -rate 1.5 [-user <id>]")
	}
	rate, err := decimal.NewFromString(*rateStr)
	if err != nil {
		log.Fatalf("invalid rate %q: %v", *rateStr, err)
	}

	_ = godotenv.Load()
	db.Init()

	ctx := context.Background()

	if *userID != "" {
		amount, err := ledger.ApplyReturn(ctx, *userID, rate, fmt.Sprintf("Daily return of %s%%", rate.String()))
		if err != nil {
			log.Fatalf("failed to apply return to user %s: %v", *userID, err)
		}
		fmt.Printf("Applied %s%% to user %s: +$%s\n", rate.String(), *userID, amount.StringFixed(2))
		return
	}

	result, err := ledger.ApplyGlobalReturn(ctx, rate)
	if err != nil {
		log.Fatalf("failed to apply global return: %v", err)
	}

	fmt.Printf("Applied %s%% to %d users, total +$%s\n", rate.String(), result.Applied, result.Total.StringFixed(2))
	if len(result.Failed) > 0 {
		fmt.Printf("Failed for %d users: %v\n", len(result.Failed), result.Failed)
	}
}
