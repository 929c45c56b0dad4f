package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// registerMaxAttempts bounds account number regeneration when a generated
// number collides with an existing row.
const registerMaxAttempts = 5

// Service we can split methods into separate interfaces if needed but keeping it simple for now.
type Service interface {
	Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error)
	Authenticate(ctx context.Context, accountNumber string, password string) (*AccountResponse, error)
	GetAccount(ctx context.Context, accountNumber string) (*AccountResponse, error)
	ListAccounts(ctx context.Context) ([]AccountResponse, error)
	Credit(ctx context.Context, request CreditRequest) (*CreditResponse, error)
	Debit(ctx context.Context, request DebitRequest) (*DebitResponse, error)
	Transfer(ctx context.Context, request TransferRequest) (*TransferResponse, error)
	Deactivate(ctx context.Context, accountNumber string) error
	ChangePassword(ctx context.Context, request ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, request UpdateProfileRequest) error
	Statement(ctx context.Context, accountNumber string) (*StatementResponse, error)
	Close()
}

type service struct {
	dbPool         *pgxpool.Pool
	idProvider     IDProvider
	accountNumbers AccountNumberProvider
	timeProvider   TimeProvider
}

func New(dbPool *pgxpool.Pool, idProvider IDProvider, accountNumbers AccountNumberProvider, timeProvider TimeProvider) (Service, error) {
	return &service{
		dbPool:         dbPool,
		idProvider:     idProvider,
		accountNumbers: accountNumbers,
		timeProvider:   timeProvider,
	}, nil
}

func (s *service) Close() {
	s.dbPool.Close()
}

func (s *service) Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error) {

	if request.Name == "" {
		return nil, ErrInvalidName
	}

	if !ValidPassword(request.Password) {
		return nil, ErrInvalidPassword
	}

	if request.InitialBalance.LessThan(MinimumInitialBalance) {
		return nil, ErrBalanceBelowMinimum
	}

	if !ValidContact(request.ContactNumber) {
		return nil, ErrInvalidContact
	}

	if !ValidEmail(request.Email) {
		return nil, ErrInvalidEmail
	}

	for attempt := 0; attempt < registerMaxAttempts; attempt++ {
		account := Account{
			ID:            s.idProvider.NextID(),
			AccountNumber: s.accountNumbers.NextAccountNumber(),
			Name:          request.Name,
			DOB:           request.DOB,
			City:          request.City,
			Password:      request.Password,
			Balance:       request.InitialBalance,
			ContactNumber: request.ContactNumber,
			Email:         request.Email,
			Address:       request.Address,
			Status:        StatusActive,
		}

		err := pgx.BeginTxFunc(ctx, s.dbPool, pgx.TxOptions{}, func(tx pgx.Tx) error {
			return InsertUser(ctx, tx, account)
		})

		if err != nil {
			var pgErr *pgconn.PgError

			if errors.As(err, &pgErr) && pgErr.Code == PostgresErrorUniqueViolation {
				continue
			}

			return nil, fmt.Errorf("insert user failed: %w", err)
		}

		return &RegisterResponse{AccountNumber: account.AccountNumber}, nil
	}

	return nil, ErrDuplicateAccount
}

// Authenticate reproduces the stored-credential semantics of the system it
// replaces: a literal compare against the stored password. Unknown account
// and wrong password collapse into the same error.
func (s *service) Authenticate(ctx context.Context, accountNumber string, password string) (*AccountResponse, error) {
	account, err := GetUserByAccountNumber(ctx, s.dbPool, accountNumber)

	if err != nil {
		return nil, fmt.Errorf("authenticate get user failed: %w", err)
	}

	if account == nil || account.Password != password {
		return nil, ErrAuthFailed
	}

	return toAccountResponse(account), nil
}

func (s *service) GetAccount(ctx context.Context, accountNumber string) (*AccountResponse, error) {
	account, err := GetUserByAccountNumber(ctx, s.dbPool, accountNumber)

	if err != nil {
		return nil, fmt.Errorf("get account failed: %w", err)
	}

	if account == nil {
		return nil, ErrAccountNotFound
	}

	return toAccountResponse(account), nil
}

func (s *service) ListAccounts(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := ListUsers(ctx, s.dbPool)

	if err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}

	responses := make([]AccountResponse, len(accounts))

	for i := range accounts {
		responses[i] = *toAccountResponse(&accounts[i])
	}

	return responses, nil
}

func (s *service) Credit(ctx context.Context, request CreditRequest) (*CreditResponse, error) {

	if !request.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var balanceBefore, balanceAfter decimal.Decimal

	utc := s.timeProvider.NowUTC()

	err := pgx.BeginTxFunc(ctx, s.dbPool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		balance, err := GetBalanceWithLock(ctx, tx, request.AccountNumber)

		if err != nil {
			return fmt.Errorf("credit get balance failed: %w", err)
		}

		if balance == nil {
			return ErrAccountNotFound
		}

		balanceBefore = *balance
		balanceAfter = balanceBefore.Add(request.Amount)

		err = SetBalance(ctx, tx, request.AccountNumber, balanceAfter)

		if err != nil {
			return fmt.Errorf("credit update balance failed: %w", err)
		}

		err = InsertTransaction(ctx, tx, Transaction{
			ID:            s.idProvider.NextID(),
			AccountNumber: request.AccountNumber,
			TxType:        TxTypeCredit,
			Amount:        request.Amount,
			Timestamp:     utc,
		})

		if err != nil {
			return fmt.Errorf("credit insert transaction failed: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &CreditResponse{
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		TxTime:        utc,
	}, nil
}

func (s *service) Debit(ctx context.Context, request DebitRequest) (*DebitResponse, error) {

	if !request.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var balanceBefore, balanceAfter decimal.Decimal

	utc := s.timeProvider.NowUTC()

	err := pgx.BeginTxFunc(ctx, s.dbPool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		balance, err := GetBalanceWithLock(ctx, tx, request.AccountNumber)

		if err != nil {
			return fmt.Errorf("debit get balance failed: %w", err)
		}

		if balance == nil {
			return ErrAccountNotFound
		}

		balanceBefore = *balance

		if request.Amount.GreaterThan(balanceBefore) {
			return ErrInsufficientFunds
		}

		balanceAfter = balanceBefore.Sub(request.Amount)

		err = SetBalance(ctx, tx, request.AccountNumber, balanceAfter)

		if err != nil {
			return fmt.Errorf("debit update balance failed: %w", err)
		}

		err = InsertTransaction(ctx, tx, Transaction{
			ID:            s.idProvider.NextID(),
			AccountNumber: request.AccountNumber,
			TxType:        TxTypeDebit,
			Amount:        request.Amount,
			Timestamp:     utc,
		})

		if err != nil {
			return fmt.Errorf("debit insert transaction failed: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &DebitResponse{
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		TxTime:        utc,
	}, nil
}

// Transfer does not check that the target account exists: an unknown target
// absorbs the increment as a zero-row update and still receives a Received
// ledger entry, matching the behavior of the system this replaces. The whole
// movement runs in one transaction, so a failure leaves nothing applied.
func (s *service) Transfer(ctx context.Context, request TransferRequest) (*TransferResponse, error) {

	if !request.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var fromBalanceBefore, fromBalanceAfter decimal.Decimal

	utc := s.timeProvider.NowUTC()

	err := pgx.BeginTxFunc(ctx, s.dbPool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		fromBalance, err := GetBalanceWithLock(ctx, tx, request.AccountNumberFrom)

		if err != nil {
			return fmt.Errorf("transfer get balance failed: %w", err)
		}

		if fromBalance == nil {
			return ErrAccountNotFound
		}

		fromBalanceBefore = *fromBalance

		if request.Amount.GreaterThan(fromBalanceBefore) {
			return ErrInsufficientFunds
		}

		fromBalanceAfter = fromBalanceBefore.Sub(request.Amount)

		err = SetBalance(ctx, tx, request.AccountNumberFrom, fromBalanceAfter)

		if err != nil {
			return fmt.Errorf("transfer update source balance failed: %w", err)
		}

		_, err = AddToBalance(ctx, tx, request.AccountNumberTo, request.Amount)

		if err != nil {
			return fmt.Errorf("transfer update target balance failed: %w", err)
		}

		err = InsertTransaction(ctx, tx, Transaction{
			ID:            s.idProvider.NextID(),
			AccountNumber: request.AccountNumberFrom,
			TxType:        TxTypeTransfer,
			Amount:        request.Amount,
			Timestamp:     utc,
		})

		if err != nil {
			return fmt.Errorf("transfer insert source transaction failed: %w", err)
		}

		err = InsertTransaction(ctx, tx, Transaction{
			ID:            s.idProvider.NextID(),
			AccountNumber: request.AccountNumberTo,
			TxType:        TxTypeReceived,
			Amount:        request.Amount,
			Timestamp:     utc,
		})

		if err != nil {
			return fmt.Errorf("transfer insert target transaction failed: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &TransferResponse{
		FromBalanceBefore: fromBalanceBefore,
		FromBalanceAfter:  fromBalanceAfter,
		TxTime:            utc,
	}, nil
}

// Deactivate is idempotent: deactivating an already deactivated account
// rewrites the same status.
func (s *service) Deactivate(ctx context.Context, accountNumber string) error {
	rowsChanged, err := SetStatus(ctx, s.dbPool, accountNumber, StatusDeactivated)

	if err != nil {
		return fmt.Errorf("deactivate failed: %w", err)
	}

	if rowsChanged == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (s *service) ChangePassword(ctx context.Context, request ChangePasswordRequest) error {

	if !ValidPassword(request.NewPassword) {
		return ErrInvalidPassword
	}

	rowsChanged, err := SetPassword(ctx, s.dbPool, request.AccountNumber, request.NewPassword)

	if err != nil {
		return fmt.Errorf("change password failed: %w", err)
	}

	if rowsChanged == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (s *service) UpdateProfile(ctx context.Context, request UpdateProfileRequest) error {

	if !ValidContact(request.ContactNumber) {
		return ErrInvalidContact
	}

	if !ValidEmail(request.Email) {
		return ErrInvalidEmail
	}

	rowsChanged, err := UpdateProfileFields(ctx, s.dbPool, request.AccountNumber, request.City, request.ContactNumber, request.Email)

	if err != nil {
		return fmt.Errorf("update profile failed: %w", err)
	}

	if rowsChanged == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (s *service) Statement(ctx context.Context, accountNumber string) (*StatementResponse, error) {
	transactions, err := GetTransactionsByAccountNumber(ctx, s.dbPool, accountNumber)

	if err != nil {
		return nil, fmt.Errorf("get transactions from DB failed: %w", err)
	}

	entries := make([]StatementEntry, len(transactions))

	for i, txn := range transactions {
		entries[i] = StatementEntry{
			TxType:    txn.TxType,
			Amount:    txn.Amount,
			Timestamp: txn.Timestamp,
		}
	}

	return &StatementResponse{Entries: entries}, nil
}

func toAccountResponse(account *Account) *AccountResponse {
	return &AccountResponse{
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		DOB:           account.DOB,
		City:          account.City,
		Balance:       account.Balance,
		ContactNumber: account.ContactNumber,
		Email:         account.Email,
		Address:       account.Address,
		Status:        account.Status,
	}
}
