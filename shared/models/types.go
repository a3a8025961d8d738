package models

import (
	"fmt"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
)

// AccountType is the closed set of account kinds. Values outside the set are
// rejected at construction via ParseAccountType rather than pattern-matched
// downstream.
type AccountType string

const (
	AccountSavings  AccountType = "Savings"
	AccountChecking AccountType = "Checking"
	AccountCurrent  AccountType = "Current"
)

// ParseAccountType validates s against the closed set. Comparison is
// case-sensitive; the stored representation is canonical.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case AccountSavings, AccountChecking, AccountCurrent:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown account type %q", errs.ErrValidation, s)
}

// TransactionType is the closed set of transaction kinds.
type TransactionType string

const (
	TypeDeposit    TransactionType = "Deposit"
	TypeWithdrawal TransactionType = "Withdrawal"
	TypeTransfer   TransactionType = "Transfer"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeDeposit, TypeWithdrawal, TypeTransfer:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", errs.ErrValidation, s)
}

// TransactionStatus is the transaction lifecycle state. StatusPending is the
// only non-terminal state; StatusSuccess and StatusFailed admit no further
// transition.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch st := TransactionStatus(s); st {
	case StatusPending, StatusSuccess, StatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown transaction status %q", errs.ErrValidation, s)
}

// Terminal reports whether no further transition is permitted from s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// CanTransitionTo reports whether the state machine permits moving from s to
// next. Every transition out of a pending record is legal, including staying
// pending; terminal states admit none.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == StatusPending
}
