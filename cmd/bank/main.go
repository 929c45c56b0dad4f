package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mddanish9155/Banking-Application/internal/bank"
	"github.com/mddanish9155/Banking-Application/internal/bank_migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// convert all int64 to string, so it does not break some log visualization tools built with JavaScript
			if a.Value.Kind() == slog.KindInt64 {
				return slog.String(a.Key, strconv.FormatInt(a.Value.Int64(), 10))
			}
			return a
		},
	})).With("app", "bank")

	appConfig, err := bank.LoadConfig()

	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)

	err = bank_migrations.Up(ctx, 999, appConfig.DBConnStr)

	if err != nil {
		cancel()
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(appConfig.DBConnStr)

	if err != nil {
		cancel()
		logger.Error("pgx failed to parse config", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = appConfig.DBMaxConnections

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)

	cancel()

	if err != nil {
		logger.Error("failed to create db pool", "error", err)
		os.Exit(1)
	}

	idProvider, err := bank.NewIDProvider(appConfig.NodeID)

	if err != nil {
		logger.Error("failed to create ID provider", "error", err)
		os.Exit(1)
	}

	service, err := bank.New(dbPool, idProvider, bank.NewAccountNumberProvider(), bank.NewTimeProvider())

	if err != nil {
		logger.Error("failed to create bank service", "error", err)
		os.Exit(1)
	}

	defer service.Close()

	console := newConsole(logger, service)

	console.run()
}

type console struct {
	logger  *slog.Logger
	service bank.Service
	scanner *bufio.Scanner
}

func newConsole(logger *slog.Logger, service bank.Service) *console {
	return &console{
		logger:  logger,
		service: service,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *console) run() {
	for {
		fmt.Println("\n--- Banking System ---")
		fmt.Println("1. Add User")
		fmt.Println("2. Show Users")
		fmt.Println("3. Login")
		fmt.Println("4. Exit")

		switch c.prompt("Enter your choice: ") {
		case "1":
			c.addUser()
		case "2":
			c.showUsers()
		case "3":
			c.login()
		case "4":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Try again.")
		}
	}
}

func (c *console) addUser() {
	fmt.Println("\n--- Add User ---")

	name := c.prompt("Enter name: ")
	dob := c.prompt("Enter date of birth (DD-MM-YYYY): ")
	city := c.prompt("Enter city: ")

	password := c.prompt("Enter password (must include uppercase, lowercase, and number): ")
	for !bank.ValidPassword(password) {
		fmt.Println("Invalid password. Try again.")
		password = c.prompt("Enter password (must include uppercase, lowercase, and number): ")
	}

	balance := c.promptAmount("Enter initial balance (minimum 2000): ")
	for balance.LessThan(bank.MinimumInitialBalance) {
		fmt.Println("Balance must be at least 2000.")
		balance = c.promptAmount("Enter initial balance: ")
	}

	contact := c.prompt("Enter contact number: ")
	for !bank.ValidContact(contact) {
		fmt.Println("Invalid contact number. Try again.")
		contact = c.prompt("Enter contact number: ")
	}

	email := c.prompt("Enter email: ")
	for !bank.ValidEmail(email) {
		fmt.Println("Invalid email format. Try again.")
		email = c.prompt("Enter email: ")
	}

	address := c.prompt("Enter address: ")

	ctx, cancel := opContext()
	defer cancel()

	response, err := c.service.Register(ctx, bank.RegisterRequest{
		Name:           name,
		DOB:            dob,
		City:           city,
		Password:       password,
		InitialBalance: balance,
		ContactNumber:  contact,
		Email:          email,
		Address:        address,
	})

	if err != nil {
		if errors.Is(err, bank.ErrDuplicateAccount) {
			fmt.Println("Failed to add user. Account number already exists.")
			return
		}

		c.fail("add user failed", err)
		return
	}

	fmt.Printf("User added successfully! Account Number: %s\n", response.AccountNumber)
}

func (c *console) showUsers() {
	ctx, cancel := opContext()
	defer cancel()

	accounts, err := c.service.ListAccounts(ctx)

	if err != nil {
		c.fail("show users failed", err)
		return
	}

	if len(accounts) == 0 {
		fmt.Println("No users found.")
		return
	}

	fmt.Println("\n--- User List ---")
	for _, a := range accounts {
		fmt.Printf(`
	Account Number: %s
	Name: %s
	DOB: %s
	City: %s
	Balance: %s
	Contact: %s
	Email: %s
	Address: %s
	Status: %s
`, a.AccountNumber, a.Name, a.DOB, a.City, a.Balance, a.ContactNumber, a.Email, a.Address, a.Status)
	}
}

func (c *console) login() {
	fmt.Println("\n--- Login ---")

	accountNumber := c.prompt("Enter account number: ")
	password := c.prompt("Enter password: ")

	ctx, cancel := opContext()
	account, err := c.service.Authenticate(ctx, accountNumber, password)
	cancel()

	if err != nil {
		if errors.Is(err, bank.ErrAuthFailed) {
			fmt.Println("Invalid account number or password.")
			return
		}

		c.fail("login failed", err)
		return
	}

	fmt.Printf("\nWelcome, %s!\n", account.Name)

	c.session(accountNumber)
}

func (c *console) session(accountNumber string) {
	for {
		fmt.Println("\n1. Show Balance")
		fmt.Println("2. Show Transactions")
		fmt.Println("3. Credit Amount")
		fmt.Println("4. Debit Amount")
		fmt.Println("5. Transfer Amount")
		fmt.Println("6. Deactivate Account")
		fmt.Println("7. Change Password")
		fmt.Println("8. Update Profile")
		fmt.Println("9. Logout")

		choice := c.prompt("Enter your choice (or 'b' to go back): ")

		switch choice {
		case "b":
			fmt.Println("Returning to main menu.")
			return
		case "1":
			c.showBalance(accountNumber)
		case "2":
			c.showTransactions(accountNumber)
		case "3":
			c.credit(accountNumber)
		case "4":
			c.debit(accountNumber)
		case "5":
			c.transfer(accountNumber)
		case "6":
			c.deactivate(accountNumber)
		case "7":
			c.changePassword(accountNumber)
		case "8":
			c.updateProfile(accountNumber)
		case "9":
			fmt.Println("Logged out.")
			return
		default:
			fmt.Println("Invalid choice. Try again.")
		}
	}
}

func (c *console) showBalance(accountNumber string) {
	ctx, cancel := opContext()
	defer cancel()

	account, err := c.service.GetAccount(ctx, accountNumber)

	if err != nil {
		c.fail("show balance failed", err)
		return
	}

	fmt.Printf("Current Balance: %s\n", account.Balance)
}

func (c *console) showTransactions(accountNumber string) {
	ctx, cancel := opContext()
	defer cancel()

	statement, err := c.service.Statement(ctx, accountNumber)

	if err != nil {
		c.fail("show transactions failed", err)
		return
	}

	fmt.Println("\n--- Transaction History ---")
	for _, entry := range statement.Entries {
		fmt.Printf("%s | %s | Amount: %s\n", entry.Timestamp.Format(time.DateTime), entry.TxType, entry.Amount)
	}
}

func (c *console) credit(accountNumber string) {
	amount := c.promptAmount("Enter amount to credit: ")

	ctx, cancel := opContext()
	defer cancel()

	_, err := c.service.Credit(ctx, bank.CreditRequest{
		AccountNumber: accountNumber,
		Amount:        amount,
	})

	if err != nil {
		if errors.Is(err, bank.ErrInvalidAmount) {
			fmt.Println("Amount must be positive.")
			return
		}

		c.fail("credit failed", err)
		return
	}

	fmt.Println("Amount credited successfully.")
}

func (c *console) debit(accountNumber string) {
	amount := c.promptAmount("Enter amount to debit: ")

	ctx, cancel := opContext()
	defer cancel()

	_, err := c.service.Debit(ctx, bank.DebitRequest{
		AccountNumber: accountNumber,
		Amount:        amount,
	})

	if err != nil {
		switch {
		case errors.Is(err, bank.ErrInsufficientFunds):
			fmt.Println("Insufficient balance.")
		case errors.Is(err, bank.ErrInvalidAmount):
			fmt.Println("Amount must be positive.")
		default:
			c.fail("debit failed", err)
		}
		return
	}

	fmt.Println("Amount debited successfully.")
}

func (c *console) transfer(accountNumber string) {
	targetAccount := c.prompt("Enter target account number: ")
	amount := c.promptAmount("Enter amount to transfer: ")

	ctx, cancel := opContext()
	defer cancel()

	_, err := c.service.Transfer(ctx, bank.TransferRequest{
		AccountNumberFrom: accountNumber,
		AccountNumberTo:   targetAccount,
		Amount:            amount,
	})

	if err != nil {
		switch {
		case errors.Is(err, bank.ErrInsufficientFunds):
			fmt.Println("Insufficient balance.")
		case errors.Is(err, bank.ErrInvalidAmount):
			fmt.Println("Amount must be positive.")
		default:
			c.fail("transfer failed", err)
		}
		return
	}

	fmt.Println("Amount transferred successfully.")
}

func (c *console) deactivate(accountNumber string) {
	ctx, cancel := opContext()
	defer cancel()

	err := c.service.Deactivate(ctx, accountNumber)

	if err != nil {
		c.fail("deactivate failed", err)
		return
	}

	fmt.Println("Account deactivated.")
}

func (c *console) changePassword(accountNumber string) {
	newPassword := c.prompt("Enter new password: ")
	for !bank.ValidPassword(newPassword) {
		fmt.Println("Invalid password. Try again.")
		newPassword = c.prompt("Enter new password: ")
	}

	ctx, cancel := opContext()
	defer cancel()

	err := c.service.ChangePassword(ctx, bank.ChangePasswordRequest{
		AccountNumber: accountNumber,
		NewPassword:   newPassword,
	})

	if err != nil {
		c.fail("change password failed", err)
		return
	}

	fmt.Println("Password updated successfully.")
}

func (c *console) updateProfile(accountNumber string) {
	newCity := c.prompt("Enter new city: ")

	newContact := c.prompt("Enter new contact number: ")
	for !bank.ValidContact(newContact) {
		fmt.Println("Invalid contact number. Try again.")
		newContact = c.prompt("Enter new contact number: ")
	}

	newEmail := c.prompt("Enter new email: ")
	for !bank.ValidEmail(newEmail) {
		fmt.Println("Invalid email format. Try again.")
		newEmail = c.prompt("Enter new email: ")
	}

	ctx, cancel := opContext()
	defer cancel()

	err := c.service.UpdateProfile(ctx, bank.UpdateProfileRequest{
		AccountNumber: accountNumber,
		City:          newCity,
		ContactNumber: newContact,
		Email:         newEmail,
	})

	if err != nil {
		c.fail("update profile failed", err)
		return
	}

	fmt.Println("Profile updated successfully.")
}

func (c *console) prompt(label string) string {
	fmt.Print(label)

	if !c.scanner.Scan() {
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}

	return strings.TrimSpace(c.scanner.Text())
}

func (c *console) promptAmount(label string) decimal.Decimal {
	for {
		input := c.prompt(label)

		amount, err := decimal.NewFromString(input)

		if err != nil {
			fmt.Println("Invalid amount. Try again.")
			continue
		}

		return amount
	}
}

func (c *console) fail(message string, err error) {
	c.logger.Error(message, "error", err)
	fmt.Println("Something went wrong. Try again.")
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
