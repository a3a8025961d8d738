// Package events defines the Redis Streams event contract between the
// registry services and provides the publisher/subscriber plumbing.
package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"

	TransactionCreated   = "transaction.created"
	TransactionUpdated   = "transaction.updated"
	TransactionCancelled = "transaction.cancelled"
	TransactionSettled   = "transaction.settled"
	BalanceUpdated       = "balance.updated"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	CustomerEventsStream    = "customer.events"
	TransactionEventsStream = "transaction.events"
)

// Event is the envelope written to a stream. ID is assigned by the publisher
// so consumers can deduplicate independently of Redis message IDs.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	CustomerID    int64  `json:"customerId"`
}

type AccountUpdatedEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
}

type AccountDeletedEvent struct {
	AccountID int64 `json:"accountId"`
}

type CustomerCreatedEvent struct {
	CustomerID int64  `json:"customerId"`
	Email      string `json:"email"`
}

type CustomerUpdatedEvent struct {
	CustomerID int64  `json:"customerId"`
	Email      string `json:"email"`
}

type CustomerDeletedEvent struct {
	CustomerID int64 `json:"customerId"`
}

type TransactionCreatedEvent struct {
	TransactionID int64  `json:"transactionId"`
	AccountID     int64  `json:"accountId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
}

type TransactionCancelledEvent struct {
	TransactionID int64 `json:"transactionId"`
	AccountID     int64 `json:"accountId"`
}

// TransactionSettledEvent carries everything the accounts service needs to
// apply the balance effect without a call back to the transactions store.
// Amount is the decimal's canonical string form to avoid float rounding in
// transit.
type TransactionSettledEvent struct {
	TransactionID int64  `json:"transactionId"`
	AccountID     int64  `json:"accountId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Outcome       string `json:"outcome"`
}

type BalanceUpdatedEvent struct {
	AccountID  int64  `json:"accountId"`
	NewBalance string `json:"newBalance"`
	Change     string `json:"change"`
}
