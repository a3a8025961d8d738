package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the write model for the accounts store. ID and CreatedAt are
// assigned by storage and never change afterwards. AccountNumber is unique
// across all accounts; the constraint lives in the database, not here.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	CustomerID    int64           `json:"customerId"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
}

// Customer is the write model for the customers store. Email is unique
// across all customers.
type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Transaction is the write model for the transactions store. AccountID and
// TransactionDate are immutable after creation; Amount, Type and Status may
// only change while Status is pending.
type Transaction struct {
	ID              int64             `json:"id"`
	AccountID       int64             `json:"accountId"`
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	TransactionDate time.Time         `json:"transactionDate"`
	Status          TransactionStatus `json:"status"`
}
