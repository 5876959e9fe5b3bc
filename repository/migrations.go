package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS trusts (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		contact_email VARCHAR(255) NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id UUID PRIMARY KEY,
		trust_id UUID NOT NULL REFERENCES trusts(id),
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount_required BIGINT NOT NULL,
		amount_collected BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL DEFAULT 'OPEN',
		due_date VARCHAR(10) NOT NULL DEFAULT '',
		invoice_url TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_trust_id ON bills(trust_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		bill_id UUID NOT NULL REFERENCES bills(id),
		trust_id UUID NOT NULL REFERENCES trusts(id),
		payment_id VARCHAR(255) NOT NULL,
		order_id VARCHAR(255) NOT NULL DEFAULT '',
		donor_email VARCHAR(255) NOT NULL DEFAULT '',
		amount BIGINT NOT NULL,
		currency VARCHAR(8) NOT NULL,
		canonical_hash VARCHAR(128) NOT NULL,
		raw_meta JSONB NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_payment_id ON transactions(payment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_bill_id ON transactions(bill_id)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id BIGSERIAL PRIMARY KEY,
		event_type VARCHAR(64) NOT NULL,
		ref_table VARCHAR(64) NOT NULL,
		ref_id VARCHAR(255) NOT NULL,
		data JSONB NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_event_type ON audit_log(event_type)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS trusts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id TEXT PRIMARY KEY,
		trust_id TEXT NOT NULL REFERENCES trusts(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount_required INTEGER NOT NULL,
		amount_collected INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'OPEN',
		due_date TEXT NOT NULL DEFAULT '',
		invoice_url TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_trust_id ON bills(trust_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bill_id TEXT NOT NULL REFERENCES bills(id),
		trust_id TEXT NOT NULL REFERENCES trusts(id),
		payment_id TEXT NOT NULL,
		order_id TEXT NOT NULL DEFAULT '',
		donor_email TEXT NOT NULL DEFAULT '',
		amount INTEGER NOT NULL,
		currency TEXT NOT NULL,
		canonical_hash TEXT NOT NULL,
		raw_meta TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_payment_id ON transactions(payment_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_bill_id ON transactions(bill_id)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		ref_table TEXT NOT NULL,
		ref_id TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_event_type ON audit_log(event_type)`,
}

func migrate(ctx context.Context, db *sql.DB, dialect string) error {
	schema := postgresSchema
	if dialect == DialectSQLite {
		schema = sqliteSchema
	}
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
