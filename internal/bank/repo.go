package bank

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	PostgresErrorUniqueViolation = "23505"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func InsertUser(ctx context.Context, dbtx DBTX, account Account) error {
	sql := `
INSERT INTO users (id, account_number, name, dob, city, password, balance, contact_number, email, address, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := dbtx.Exec(ctx, sql,
		account.ID, account.AccountNumber, account.Name, account.DOB, account.City,
		account.Password, account.Balance, account.ContactNumber, account.Email,
		account.Address, account.Status)

	return err
}

func GetUserByAccountNumber(ctx context.Context, dbtx DBTX, accountNumber string) (*Account, error) {
	sql := `
SELECT id, account_number, name, dob, city, password, balance, contact_number, email, address, status
FROM users WHERE account_number = $1`

	rows, err := dbtx.Query(ctx, sql, accountNumber)

	if err != nil {
		return nil, err
	}

	account, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Account])

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &account, nil
}

func ListUsers(ctx context.Context, dbtx DBTX) ([]Account, error) {
	sql := `
SELECT id, account_number, name, dob, city, password, balance, contact_number, email, address, status
FROM users ORDER BY id`

	rows, err := dbtx.Query(ctx, sql)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[Account])
}

func GetBalanceWithLock(ctx context.Context, dbtx DBTX, accountNumber string) (*decimal.Decimal, error) {
	sql := "SELECT balance FROM users WHERE account_number = $1 FOR UPDATE"

	var balance decimal.Decimal
	row := dbtx.QueryRow(ctx, sql, accountNumber)

	err := row.Scan(&balance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &balance, nil
}

func SetBalance(ctx context.Context, dbtx DBTX, accountNumber string, balance decimal.Decimal) error {
	sql := "UPDATE users SET balance = $1 WHERE account_number = $2"

	_, err := dbtx.Exec(ctx, sql, balance, accountNumber)

	return err
}

// AddToBalance increments in place and reports rows affected; a missing
// account number affects zero rows without an error.
func AddToBalance(ctx context.Context, dbtx DBTX, accountNumber string, amount decimal.Decimal) (int64, error) {
	sql := "UPDATE users SET balance = balance + $1 WHERE account_number = $2"

	exec, err := dbtx.Exec(ctx, sql, amount, accountNumber)

	if err != nil {
		return 0, err
	}

	return exec.RowsAffected(), nil
}

func SetStatus(ctx context.Context, dbtx DBTX, accountNumber string, status string) (int64, error) {
	sql := "UPDATE users SET status = $1 WHERE account_number = $2"

	exec, err := dbtx.Exec(ctx, sql, status, accountNumber)

	if err != nil {
		return 0, err
	}

	return exec.RowsAffected(), nil
}

func SetPassword(ctx context.Context, dbtx DBTX, accountNumber string, password string) (int64, error) {
	sql := "UPDATE users SET password = $1 WHERE account_number = $2"

	exec, err := dbtx.Exec(ctx, sql, password, accountNumber)

	if err != nil {
		return 0, err
	}

	return exec.RowsAffected(), nil
}

func UpdateProfileFields(ctx context.Context, dbtx DBTX, accountNumber string, city string, contact string, email string) (int64, error) {
	sql := "UPDATE users SET city = $1, contact_number = $2, email = $3 WHERE account_number = $4"

	exec, err := dbtx.Exec(ctx, sql, city, contact, email, accountNumber)

	if err != nil {
		return 0, err
	}

	return exec.RowsAffected(), nil
}

func InsertTransaction(ctx context.Context, dbtx DBTX, txn Transaction) error {
	sql := `
INSERT INTO transactions (id, account_number, type, amount, timestamp)
VALUES ($1, $2, $3, $4, $5)`

	_, err := dbtx.Exec(ctx, sql, txn.ID, txn.AccountNumber, txn.TxType, txn.Amount, txn.Timestamp)

	return err
}

func GetTransactionsByAccountNumber(ctx context.Context, dbtx DBTX, accountNumber string) ([]Transaction, error) {
	sql := `
SELECT id, account_number, type, amount, timestamp
FROM transactions WHERE account_number = $1 ORDER BY id`

	rows, err := dbtx.Query(ctx, sql, accountNumber)

	if err != nil {
		return make([]Transaction, 0), err
	}

	transactions, err := pgx.CollectRows(rows, pgx.RowToStructByName[Transaction])

	if err != nil {
		return make([]Transaction, 0), err
	}

	return transactions, nil
}
