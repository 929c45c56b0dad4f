package bank_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mddanish9155/Banking-Application/internal/bank"
)

func TestRegister(t *testing.T) {
	testCases := []struct {
		name     string
		testFunc func(t *testing.T, service bank.Service)
	}{
		{
			name: "register inserts into users table with Active status",
			testFunc: func(t *testing.T, service bank.Service) {
				request := validRegisterRequest(decimal.NewFromInt(2000))

				response, err := service.Register(t.Context(), request)

				if err != nil {
					t.Fatal(err)
				}

				if len(response.AccountNumber) != 10 {
					t.Fatalf("expected 10-digit account number, got %q", response.AccountNumber)
				}

				account, err := service.GetAccount(t.Context(), response.AccountNumber)

				if err != nil {
					t.Fatal(err)
				}

				if account.Name != request.Name {
					t.Fatalf("expected name %q, got %q", request.Name, account.Name)
				}

				if !account.Balance.Equal(request.InitialBalance) {
					t.Fatalf("expected balance %s, got %s", request.InitialBalance, account.Balance)
				}

				if account.Status != bank.StatusActive {
					t.Fatalf("expected status %q, got %q", bank.StatusActive, account.Status)
				}
			},
		},
		{
			name: "register assigns distinct account numbers",
			testFunc: func(t *testing.T, service bank.Service) {
				seen := make(map[string]bool)

				for i := 0; i < 20; i++ {
					accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

					if seen[accountNumber] {
						t.Fatalf("account number %s assigned twice", accountNumber)
					}

					seen[accountNumber] = true
				}
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				logTableChanges(t, "users")
				resetDB(t)
			})

			testCase.testFunc(t, service)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(request *bank.RegisterRequest)
		expectedErr error
	}{
		{
			name:        "empty name",
			mutate:      func(r *bank.RegisterRequest) { r.Name = "" },
			expectedErr: bank.ErrInvalidName,
		},
		{
			name:        "password too short",
			mutate:      func(r *bank.RegisterRequest) { r.Password = "Ab1" },
			expectedErr: bank.ErrInvalidPassword,
		},
		{
			name:        "password without uppercase",
			mutate:      func(r *bank.RegisterRequest) { r.Password = "secret1234" },
			expectedErr: bank.ErrInvalidPassword,
		},
		{
			name:        "password without digit",
			mutate:      func(r *bank.RegisterRequest) { r.Password = "SecretSecret" },
			expectedErr: bank.ErrInvalidPassword,
		},
		{
			name:        "initial balance below minimum",
			mutate:      func(r *bank.RegisterRequest) { r.InitialBalance = decimal.NewFromInt(1999) },
			expectedErr: bank.ErrBalanceBelowMinimum,
		},
		{
			name:        "contact number too short",
			mutate:      func(r *bank.RegisterRequest) { r.ContactNumber = "12345" },
			expectedErr: bank.ErrInvalidContact,
		},
		{
			name:        "contact number with letters",
			mutate:      func(r *bank.RegisterRequest) { r.ContactNumber = "98765abc10" },
			expectedErr: bank.ErrInvalidContact,
		},
		{
			name:        "email without domain",
			mutate:      func(r *bank.RegisterRequest) { r.Email = "user@" },
			expectedErr: bank.ErrInvalidEmail,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				resetDB(t)
			})

			request := validRegisterRequest(decimal.NewFromInt(2000))
			testCase.mutate(&request)

			_, err := service.Register(t.Context(), request)

			if !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("expected error %v, got %v", testCase.expectedErr, err)
			}

			accounts, err := service.ListAccounts(t.Context())

			if err != nil {
				t.Fatal(err)
			}

			if len(accounts) != 0 {
				t.Fatalf("expected no accounts after rejected registration, got %d", len(accounts))
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	testCases := []struct {
		name     string
		testFunc func(t *testing.T, service bank.Service, accountNumber string)
	}{
		{
			name: "matching credentials return the account",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				account, err := service.Authenticate(t.Context(), accountNumber, "Secret1234")

				if err != nil {
					t.Fatal(err)
				}

				if account.AccountNumber != accountNumber {
					t.Fatalf("expected account number %s, got %s", accountNumber, account.AccountNumber)
				}
			},
		},
		{
			name: "wrong password fails",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				_, err := service.Authenticate(t.Context(), accountNumber, "Wrong1234")

				if !errors.Is(err, bank.ErrAuthFailed) {
					t.Fatalf("expected %v, got %v", bank.ErrAuthFailed, err)
				}
			},
		},
		{
			name: "unknown account fails with the same error",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				_, err := service.Authenticate(t.Context(), "0000000000", "Secret1234")

				if !errors.Is(err, bank.ErrAuthFailed) {
					t.Fatalf("expected %v, got %v", bank.ErrAuthFailed, err)
				}
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				resetDB(t)
			})

			accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

			testCase.testFunc(t, service, accountNumber)
		})
	}
}

func TestCreditDebit(t *testing.T) {
	testCases := []struct {
		name     string
		testFunc func(t *testing.T, service bank.Service, accountNumber string)
	}{
		{
			name: "credit adds balance and appends a Credit entry",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				response, err := service.Credit(t.Context(), bank.CreditRequest{
					AccountNumber: accountNumber,
					Amount:        decimal.NewFromInt(500),
				})

				if err != nil {
					t.Fatal(err)
				}

				if !response.BalanceBefore.Equal(decimal.NewFromInt(2000)) {
					t.Fatalf("expected balance before 2000, got %s", response.BalanceBefore)
				}

				if !response.BalanceAfter.Equal(decimal.NewFromInt(2500)) {
					t.Fatalf("expected balance after 2500, got %s", response.BalanceAfter)
				}

				assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(2500))
				assertAccountHasTransaction(t, accountNumber, bank.TxTypeCredit, decimal.NewFromInt(500))
			},
		},
		{
			name: "credit rejects non-positive amount",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				for _, amount := range []int64{0, -100} {
					_, err := service.Credit(t.Context(), bank.CreditRequest{
						AccountNumber: accountNumber,
						Amount:        decimal.NewFromInt(amount),
					})

					if !errors.Is(err, bank.ErrInvalidAmount) {
						t.Fatalf("expected %v, got %v", bank.ErrInvalidAmount, err)
					}
				}
			},
		},
		{
			name: "credit returns error if account not found",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				_, err := service.Credit(t.Context(), bank.CreditRequest{
					AccountNumber: "0000000000",
					Amount:        decimal.NewFromInt(100),
				})

				if !errors.Is(err, bank.ErrAccountNotFound) {
					t.Fatalf("expected %v, got %v", bank.ErrAccountNotFound, err)
				}
			},
		},
		{
			name: "debit deducts balance and appends a Debit entry",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				response, err := service.Debit(t.Context(), bank.DebitRequest{
					AccountNumber: accountNumber,
					Amount:        decimal.NewFromInt(300),
				})

				if err != nil {
					t.Fatal(err)
				}

				if !response.BalanceAfter.Equal(decimal.NewFromInt(1700)) {
					t.Fatalf("expected balance after 1700, got %s", response.BalanceAfter)
				}

				assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(1700))
				assertAccountHasTransaction(t, accountNumber, bank.TxTypeDebit, decimal.NewFromInt(300))
			},
		},
		{
			name: "debit above balance leaves balance and ledger unchanged",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				_, err := service.Debit(t.Context(), bank.DebitRequest{
					AccountNumber: accountNumber,
					Amount:        decimal.NewFromInt(2001),
				})

				if !errors.Is(err, bank.ErrInsufficientFunds) {
					t.Fatalf("expected %v, got %v", bank.ErrInsufficientFunds, err)
				}

				assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(2000))

				if n := countTransactions(t, accountNumber, bank.TxTypeDebit, decimal.NewFromInt(2001)); n != 0 {
					t.Fatalf("expected no Debit entry after rejection, got %d", n)
				}
			},
		},
		{
			name: "debit of the full balance succeeds",
			testFunc: func(t *testing.T, service bank.Service, accountNumber string) {
				response, err := service.Debit(t.Context(), bank.DebitRequest{
					AccountNumber: accountNumber,
					Amount:        decimal.NewFromInt(2000),
				})

				if err != nil {
					t.Fatal(err)
				}

				if !response.BalanceAfter.IsZero() {
					t.Fatalf("expected zero balance, got %s", response.BalanceAfter)
				}
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				logTableChanges(t, "transactions")
				resetDB(t)
			})

			accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

			testCase.testFunc(t, service, accountNumber)
		})
	}
}

func TestTransfer(t *testing.T) {
	testCases := []struct {
		name     string
		testFunc func(t *testing.T, service bank.Service, source string, target string)
	}{
		{
			name: "transfer moves balance and posts both ledger entries",
			testFunc: func(t *testing.T, service bank.Service, source string, target string) {
				response, err := service.Transfer(t.Context(), bank.TransferRequest{
					AccountNumberFrom: source,
					AccountNumberTo:   target,
					Amount:            decimal.NewFromInt(1000),
				})

				if err != nil {
					t.Fatal(err)
				}

				if !response.FromBalanceAfter.Equal(decimal.NewFromInt(1500)) {
					t.Fatalf("expected source balance after 1500, got %s", response.FromBalanceAfter)
				}

				assertAccountHasBalance(t, service, source, decimal.NewFromInt(1500))
				assertAccountHasBalance(t, service, target, decimal.NewFromInt(3000))

				if n := countTransactions(t, source, bank.TxTypeTransfer, decimal.NewFromInt(1000)); n != 1 {
					t.Fatalf("expected exactly one Transfer entry on source, got %d", n)
				}

				if n := countTransactions(t, target, bank.TxTypeReceived, decimal.NewFromInt(1000)); n != 1 {
					t.Fatalf("expected exactly one Received entry on target, got %d", n)
				}
			},
		},
		{
			name: "transfer above balance leaves both accounts and ledger unchanged",
			testFunc: func(t *testing.T, service bank.Service, source string, target string) {
				_, err := service.Transfer(t.Context(), bank.TransferRequest{
					AccountNumberFrom: source,
					AccountNumberTo:   target,
					Amount:            decimal.NewFromInt(2501),
				})

				if !errors.Is(err, bank.ErrInsufficientFunds) {
					t.Fatalf("expected %v, got %v", bank.ErrInsufficientFunds, err)
				}

				assertAccountHasBalance(t, service, source, decimal.NewFromInt(2500))
				assertAccountHasBalance(t, service, target, decimal.NewFromInt(2000))

				if n := countTransactions(t, source, bank.TxTypeTransfer, decimal.NewFromInt(2501)); n != 0 {
					t.Fatalf("expected no Transfer entry after rejection, got %d", n)
				}
			},
		},
		{
			name: "transfer to an unknown account debits the source and posts a Received entry",
			testFunc: func(t *testing.T, service bank.Service, source string, target string) {
				// The target update touches zero rows; the movement still
				// goes through. Documented behavior, see DESIGN.md.
				_, err := service.Transfer(t.Context(), bank.TransferRequest{
					AccountNumberFrom: source,
					AccountNumberTo:   "0000000000",
					Amount:            decimal.NewFromInt(500),
				})

				if err != nil {
					t.Fatal(err)
				}

				assertAccountHasBalance(t, service, source, decimal.NewFromInt(2000))
				assertAccountHasTransaction(t, "0000000000", bank.TxTypeReceived, decimal.NewFromInt(500))
			},
		},
		{
			name: "transfer rejects non-positive amount",
			testFunc: func(t *testing.T, service bank.Service, source string, target string) {
				_, err := service.Transfer(t.Context(), bank.TransferRequest{
					AccountNumberFrom: source,
					AccountNumberTo:   target,
					Amount:            decimal.Zero,
				})

				if !errors.Is(err, bank.ErrInvalidAmount) {
					t.Fatalf("expected %v, got %v", bank.ErrInvalidAmount, err)
				}
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				logTableChanges(t, "users", "transactions")
				resetDB(t)
			})

			source := registerAccount(t, service, decimal.NewFromInt(2500))
			target := registerAccount(t, service, decimal.NewFromInt(2000))

			testCase.testFunc(t, service, source, target)
		})
	}
}

func TestDeactivate(t *testing.T) {
	service := setupBankService(t)

	t.Cleanup(func() {
		service.Close()
		logTableChanges(t, "users")
		resetDB(t)
	})

	accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

	err := service.Deactivate(t.Context(), accountNumber)

	if err != nil {
		t.Fatal(err)
	}

	account, err := service.GetAccount(t.Context(), accountNumber)

	if err != nil {
		t.Fatal(err)
	}

	if account.Status != bank.StatusDeactivated {
		t.Fatalf("expected status %q, got %q", bank.StatusDeactivated, account.Status)
	}

	// deactivating twice is a no-op, not an error
	err = service.Deactivate(t.Context(), accountNumber)

	if err != nil {
		t.Fatal(err)
	}

	err = service.Deactivate(t.Context(), "0000000000")

	if !errors.Is(err, bank.ErrAccountNotFound) {
		t.Fatalf("expected %v, got %v", bank.ErrAccountNotFound, err)
	}
}

func TestChangePassword(t *testing.T) {
	service := setupBankService(t)

	t.Cleanup(func() {
		service.Close()
		resetDB(t)
	})

	accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

	err := service.ChangePassword(t.Context(), bank.ChangePasswordRequest{
		AccountNumber: accountNumber,
		NewPassword:   "abc",
	})

	if !errors.Is(err, bank.ErrInvalidPassword) {
		t.Fatalf("expected %v, got %v", bank.ErrInvalidPassword, err)
	}

	// rejected change leaves the stored password usable
	if _, err := service.Authenticate(t.Context(), accountNumber, "Secret1234"); err != nil {
		t.Fatal(err)
	}

	err = service.ChangePassword(t.Context(), bank.ChangePasswordRequest{
		AccountNumber: accountNumber,
		NewPassword:   "NewSecret99",
	})

	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.Authenticate(t.Context(), accountNumber, "NewSecret99"); err != nil {
		t.Fatal(err)
	}

	if _, err := service.Authenticate(t.Context(), accountNumber, "Secret1234"); !errors.Is(err, bank.ErrAuthFailed) {
		t.Fatalf("expected %v, got %v", bank.ErrAuthFailed, err)
	}
}

func TestUpdateProfile(t *testing.T) {
	testCases := []struct {
		name        string
		request     bank.UpdateProfileRequest
		expectedErr error
	}{
		{
			name: "invalid contact number",
			request: bank.UpdateProfileRequest{
				City:          "Mumbai",
				ContactNumber: "12345",
				Email:         "new@example.com",
			},
			expectedErr: bank.ErrInvalidContact,
		},
		{
			name: "invalid email",
			request: bank.UpdateProfileRequest{
				City:          "Mumbai",
				ContactNumber: "9123456789",
				Email:         "not-an-email",
			},
			expectedErr: bank.ErrInvalidEmail,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service := setupBankService(t)

			t.Cleanup(func() {
				service.Close()
				resetDB(t)
			})

			accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

			request := testCase.request
			request.AccountNumber = accountNumber

			err := service.UpdateProfile(t.Context(), request)

			if !errors.Is(err, testCase.expectedErr) {
				t.Fatalf("expected %v, got %v", testCase.expectedErr, err)
			}
		})
	}

	t.Run("valid update rewrites city, contact and email", func(t *testing.T) {
		service := setupBankService(t)

		t.Cleanup(func() {
			service.Close()
			logTableChanges(t, "users")
			resetDB(t)
		})

		accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

		err := service.UpdateProfile(t.Context(), bank.UpdateProfileRequest{
			AccountNumber: accountNumber,
			City:          "Mumbai",
			ContactNumber: "9123456789",
			Email:         "new@example.com",
		})

		if err != nil {
			t.Fatal(err)
		}

		account, err := service.GetAccount(t.Context(), accountNumber)

		if err != nil {
			t.Fatal(err)
		}

		if account.City != "Mumbai" || account.ContactNumber != "9123456789" || account.Email != "new@example.com" {
			t.Fatalf("unexpected profile after update: %+v", account)
		}
	})
}

func TestStatementOrdering(t *testing.T) {
	service := setupBankService(t)

	t.Cleanup(func() {
		service.Close()
		logTableChanges(t, "transactions")
		resetDB(t)
	})

	accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

	amounts := []int64{100, 200, 300}

	for _, amount := range amounts {
		_, err := service.Credit(t.Context(), bank.CreditRequest{
			AccountNumber: accountNumber,
			Amount:        decimal.NewFromInt(amount),
		})

		if err != nil {
			t.Fatal(err)
		}
	}

	statement, err := service.Statement(t.Context(), accountNumber)

	if err != nil {
		t.Fatal(err)
	}

	if len(statement.Entries) != len(amounts) {
		t.Fatalf("expected %d entries, got %d", len(amounts), len(statement.Entries))
	}

	for i, entry := range statement.Entries {
		if !entry.Amount.Equal(decimal.NewFromInt(amounts[i])) {
			t.Fatalf("entry %d: expected amount %d, got %s", i, amounts[i], entry.Amount)
		}

		if entry.TxType != bank.TxTypeCredit {
			t.Fatalf("entry %d: expected type %s, got %s", i, bank.TxTypeCredit, entry.TxType)
		}
	}
}

// Full walkthrough: register, credit, rejected debit, transfer.
func TestAccountScenario(t *testing.T) {
	service := setupBankService(t)

	t.Cleanup(func() {
		service.Close()
		logTableChanges(t, "users", "transactions")
		resetDB(t)
	})

	accountNumber := registerAccount(t, service, decimal.NewFromInt(2000))

	_, err := service.Credit(t.Context(), bank.CreditRequest{
		AccountNumber: accountNumber,
		Amount:        decimal.NewFromInt(500),
	})

	if err != nil {
		t.Fatal(err)
	}

	assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(2500))
	assertAccountHasTransaction(t, accountNumber, bank.TxTypeCredit, decimal.NewFromInt(500))

	_, err = service.Debit(t.Context(), bank.DebitRequest{
		AccountNumber: accountNumber,
		Amount:        decimal.NewFromInt(3000),
	})

	if !errors.Is(err, bank.ErrInsufficientFunds) {
		t.Fatalf("expected %v, got %v", bank.ErrInsufficientFunds, err)
	}

	assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(2500))

	secondAccount := registerAccount(t, service, decimal.NewFromInt(2000))

	_, err = service.Transfer(t.Context(), bank.TransferRequest{
		AccountNumberFrom: accountNumber,
		AccountNumberTo:   secondAccount,
		Amount:            decimal.NewFromInt(1000),
	})

	if err != nil {
		t.Fatal(err)
	}

	assertAccountHasBalance(t, service, accountNumber, decimal.NewFromInt(1500))
	assertAccountHasBalance(t, service, secondAccount, decimal.NewFromInt(3000))
	assertAccountHasTransaction(t, accountNumber, bank.TxTypeTransfer, decimal.NewFromInt(1000))
	assertAccountHasTransaction(t, secondAccount, bank.TxTypeReceived, decimal.NewFromInt(1000))
}
