package db

import (
	"context"
	"fmt"
	"log"
	"os"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var Conn *pgxpool.Pool

// Init connects to Postgres and bootstraps the schema
func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatalf("Invalid database config: %v\n", err)
	}
	// NUMERIC columns scan into shopspring decimals
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	Conn, err = pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = Conn.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	log.Println("Connected to Postgres successfully")

	ensureUsersTable()
	ensureTransactionsTable()
	ensureWithdrawalsTable()
	ensureInvestmentsTable()
	ensureChatMessagesTable()
}

// ensureUsersTable creates the users table with the ledger columns
func ensureUsersTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            wallet_address TEXT NOT NULL DEFAULT '',
            balance NUMERIC(15,2) NOT NULL DEFAULT 0,
            total_invested NUMERIC(15,2) NOT NULL DEFAULT 0,
            total_withdrawn NUMERIC(15,2) NOT NULL DEFAULT 0,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
    `)
	if err != nil {
		log.Printf("failed to create users table: %v", err)
	}
}

// ensureTransactionsTable creates the append-only ledger
func ensureTransactionsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS transactions (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL CHECK (type IN ('deposit','withdrawal','daily_return','admin_credit','admin_debit')),
            amount NUMERIC(15,2) NOT NULL CHECK (amount >= 0),
            description TEXT NOT NULL DEFAULT '',
            reference_id UUID NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions(user_id, created_at);
    `)
	if err != nil {
		log.Printf("failed to create transactions table: %v", err)
	}
}

// ensureWithdrawalsTable creates withdrawal requests. The 'approved' status
// stays in the constraint for compatibility with old rows even though no
// transition currently produces it.
func ensureWithdrawalsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS withdrawals (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            amount NUMERIC(15,2) NOT NULL CHECK (amount > 0),
            wallet_address TEXT NOT NULL,
            payment_method TEXT NULL,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','approved','completed','rejected')),
            admin_note TEXT NULL,
            requested_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            processed_at TIMESTAMP WITH TIME ZONE NULL
        );
        CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals(status);
        CREATE INDEX IF NOT EXISTS idx_withdrawals_user ON withdrawals(user_id);
    `)
	if err != nil {
		log.Printf("failed to create withdrawals table: %v", err)
	}
}

// ensureInvestmentsTable creates investment claims
func ensureInvestmentsTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS investments (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            amount NUMERIC(15,2) NOT NULL CHECK (amount > 0),
            daily_return NUMERIC(5,2) NOT NULL DEFAULT 0,
            total_days INTEGER NOT NULL DEFAULT 30,
            days_completed INTEGER NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','active','completed','rejected')),
            payment_method TEXT NOT NULL DEFAULT '',
            payment_proof_url TEXT NOT NULL,
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            next_payout_date TIMESTAMP WITH TIME ZONE NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_investments_user ON investments(user_id);
    `)
	if err != nil {
		log.Printf("failed to create investments table: %v", err)
	}
}

// ensureChatMessagesTable creates the per-investment chat thread
func ensureChatMessagesTable() {
	ctx := context.Background()
	_, err := Conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS chat_messages (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            investment_id UUID NOT NULL REFERENCES investments(id) ON DELETE CASCADE,
            sender_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            message TEXT NULL,
            screenshot_url TEXT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        );
        CREATE INDEX IF NOT EXISTS idx_chat_messages_investment ON chat_messages(investment_id, created_at);
    `)
	if err != nil {
		log.Printf("failed to create chat_messages table: %v", err)
	}
}
