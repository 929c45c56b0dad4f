package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name           string
	DOB            string
	City           string
	Password       string
	InitialBalance decimal.Decimal
	ContactNumber  string
	Email          string
	Address        string
}

type RegisterResponse struct {
	AccountNumber string
}

type AccountResponse struct {
	AccountNumber string
	Name          string
	DOB           string
	City          string
	Balance       decimal.Decimal
	ContactNumber string
	Email         string
	Address       string
	Status        string
}

type CreditRequest struct {
	AccountNumber string
	Amount        decimal.Decimal
}

type CreditResponse struct {
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	TxTime        time.Time
}

type DebitRequest struct {
	AccountNumber string
	Amount        decimal.Decimal
}

type DebitResponse struct {
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	TxTime        time.Time
}

type TransferRequest struct {
	AccountNumberFrom string
	AccountNumberTo   string
	Amount            decimal.Decimal
}

type TransferResponse struct {
	FromBalanceBefore decimal.Decimal
	FromBalanceAfter  decimal.Decimal
	TxTime            time.Time
}

type ChangePasswordRequest struct {
	AccountNumber string
	NewPassword   string
}

type UpdateProfileRequest struct {
	AccountNumber string
	City          string
	ContactNumber string
	Email         string
}

type StatementEntry struct {
	TxType    string
	Amount    decimal.Decimal
	Timestamp time.Time
}

type StatementResponse struct {
	Entries []StatementEntry
}
