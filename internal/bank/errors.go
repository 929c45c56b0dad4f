package bank

import (
	"errors"
)

var ErrInvalidPassword = errors.New("password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
var ErrInvalidContact = errors.New("contact number must be exactly 10 digits")
var ErrInvalidEmail = errors.New("invalid email format")
var ErrInvalidName = errors.New("name must not be empty")
var ErrBalanceBelowMinimum = errors.New("initial balance below minimum")
var ErrInvalidAmount = errors.New("amount must be positive")
var ErrDuplicateAccount = errors.New("account number already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrAuthFailed = errors.New("invalid account number or password")
var ErrInsufficientFunds = errors.New("insufficient balance")
