package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive      = "Active"
	StatusDeactivated = "Deactivated"
)

const (
	TxTypeCredit   = "Credit"
	TxTypeDebit    = "Debit"
	TxTypeTransfer = "Transfer"
	TxTypeReceived = "Received"
)

// MinimumInitialBalance applies at registration only; later debits may take
// the balance below it, but never below zero.
var MinimumInitialBalance = decimal.NewFromInt(2000)

type Account struct {
	ID            int64           `db:"id"`
	AccountNumber string          `db:"account_number"`
	Name          string          `db:"name"`
	DOB           string          `db:"dob"`
	City          string          `db:"city"`
	Password      string          `db:"password"`
	Balance       decimal.Decimal `db:"balance"`
	ContactNumber string          `db:"contact_number"`
	Email         string          `db:"email"`
	Address       string          `db:"address"`
	Status        string          `db:"status"`
}

type Transaction struct {
	ID            int64           `db:"id"`
	AccountNumber string          `db:"account_number"`
	TxType        string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Timestamp     time.Time       `db:"timestamp"`
}
