package bank_migrations

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Migration struct {
	Version     int
	Description string
	Up          func(ctx context.Context, tx pgx.Tx) error
	Down        func(ctx context.Context, tx pgx.Tx) error
}

func createUsers(ctx context.Context, tx pgx.Tx) error {
	sql := `
	CREATE TABLE users (
		id             BIGINT PRIMARY KEY,
		account_number TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		dob            TEXT NOT NULL,
		city           TEXT NOT NULL,
		password       TEXT NOT NULL,
		balance        NUMERIC NOT NULL,
		contact_number TEXT NOT NULL,
		email          TEXT NOT NULL,
		address        TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'Active'
	);`
	_, err := tx.Exec(ctx, sql)
	return err
}

func dropUsers(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `DROP TABLE users;`)
	return err
}

// Transactions carry the account number, not a foreign key: a transfer may
// post an entry for an account number that has no users row.
func createTransactions(ctx context.Context, tx pgx.Tx) error {
	sql := `
	CREATE TABLE transactions (
		id             BIGINT PRIMARY KEY,
		account_number TEXT NOT NULL,
		type           TEXT NOT NULL,
		amount         NUMERIC NOT NULL,
		timestamp      TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX idx_transactions_account_number ON transactions (account_number);`
	_, err := tx.Exec(ctx, sql)
	return err
}

func dropTransactions(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `DROP TABLE transactions;`)
	return err
}

var Migrations = []Migration{
	{Version: 1, Description: "Create users table", Up: createUsers, Down: dropUsers},
	{Version: 2, Description: "Create transactions table", Up: createTransactions, Down: dropTransactions},
}
