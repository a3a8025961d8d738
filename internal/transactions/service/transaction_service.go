// Package service holds the transaction lifecycle engine: PENDING is the
// only mutable state, SUCCESS and FAILED are terminal, and settlement is the
// explicit step that moves a pending transaction to a terminal outcome and
// announces its balance effect.
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/events"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// TransactionWriter is the write-store collaborator. Update and Delete must
// re-check the pending gate at write time and report
// errs.ErrInvalidStateTransition when the record has already left PENDING.
type TransactionWriter interface {
	Create(transaction *models.Transaction) error
	GetByID(id int64) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id int64) error
}

// TransactionReader is the read-side collaborator.
type TransactionReader interface {
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	List(ctx context.Context, status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error)
	ListByAccountID(ctx context.Context, accountID int64) ([]models.Transaction, error)
	CacheView(ctx context.Context, transaction *models.Transaction)
	InvalidateView(ctx context.Context, id int64)
}

type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionService owns the transaction lifecycle and the state machine
// gating every mutation.
type TransactionService struct {
	writeRepo TransactionWriter
	readRepo  TransactionReader
	publisher EventPublisher
}

func NewTransactionService(writeRepo TransactionWriter, readRepo TransactionReader, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// CreateTransaction records a new transaction in PENDING. The referenced
// account is not checked for existence: accounts live in an independent
// store and cross-store integrity is advisory. Settlement is the explicit
// step that later moves the record to a terminal state.
func (s *TransactionService) CreateTransaction(candidate *models.Transaction) (*models.Transaction, error) {
	if !candidate.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrValidation)
	}
	if candidate.AccountID <= 0 {
		return nil, fmt.Errorf("%w: account id must be positive", errs.ErrValidation)
	}

	transaction := &models.Transaction{
		AccountID:       candidate.AccountID,
		Type:            candidate.Type,
		Amount:          candidate.Amount,
		TransactionDate: time.Now().UTC(),
		Status:          models.StatusPending,
	}
	if err := s.writeRepo.Create(transaction); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, transaction)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		AccountID:     transaction.AccountID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount.StringFixed(2),
		Status:        string(transaction.Status),
	}); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}
	return transaction, nil
}

func (s *TransactionService) GetTransaction(id int64) (*models.Transaction, error) {
	return s.readRepo.GetByID(context.Background(), id)
}

func (s *TransactionService) ListTransactions(status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error) {
	return s.readRepo.List(context.Background(), status, txType)
}

func (s *TransactionService) ListTransactionsByAccountID(accountID int64) ([]models.Transaction, error) {
	return s.readRepo.ListByAccountID(context.Background(), accountID)
}

// UpdateTransaction amends amount, type and status of a transaction that is
// still pending. Terminal records reject the mutation with
// ErrInvalidStateTransition and remain unchanged. Account ID and transaction
// date are immutable regardless of state.
func (s *TransactionService) UpdateTransaction(id int64, candidate *models.Transaction) (*models.Transaction, error) {
	if !candidate.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrValidation)
	}
	transaction, err := s.writeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !transaction.Status.CanTransitionTo(candidate.Status) {
		return nil, fmt.Errorf("%w: cannot update %s transaction %d", errs.ErrInvalidStateTransition, transaction.Status, id)
	}

	transaction.Type = candidate.Type
	transaction.Amount = candidate.Amount
	transaction.Status = candidate.Status
	if err := s.writeRepo.Update(transaction); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, transaction)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionUpdated, events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		AccountID:     transaction.AccountID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount.StringFixed(2),
		Status:        string(transaction.Status),
	}); err != nil {
		log.Printf("Failed to publish transaction.updated event: %v", err)
	}
	return transaction, nil
}

// CancelTransaction deletes a transaction that is still pending. Terminal
// records reject the cancellation with ErrInvalidStateTransition.
func (s *TransactionService) CancelTransaction(id int64) error {
	transaction, err := s.writeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if transaction.Status.Terminal() {
		return fmt.Errorf("%w: cannot cancel %s transaction %d", errs.ErrInvalidStateTransition, transaction.Status, id)
	}
	if err := s.writeRepo.Delete(id); err != nil {
		return err
	}

	ctx := context.Background()
	s.readRepo.InvalidateView(ctx, id)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCancelled, events.TransactionCancelledEvent{
		TransactionID: id,
		AccountID:     transaction.AccountID,
	}); err != nil {
		log.Printf("Failed to publish transaction.cancelled event: %v", err)
	}
	return nil
}

// SettleTransaction moves a pending transaction to the given terminal
// outcome and publishes the settlement so the accounts service can apply the
// balance effect. Settling an already-terminal transaction fails with
// ErrInvalidStateTransition; settling to PENDING is not a settlement at all
// and fails validation.
func (s *TransactionService) SettleTransaction(id int64, outcome models.TransactionStatus) (*models.Transaction, error) {
	if !outcome.Terminal() {
		return nil, fmt.Errorf("%w: settlement outcome must be SUCCESS or FAILED", errs.ErrValidation)
	}
	transaction, err := s.writeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !transaction.Status.CanTransitionTo(outcome) {
		return nil, fmt.Errorf("%w: cannot settle %s transaction %d", errs.ErrInvalidStateTransition, transaction.Status, id)
	}

	transaction.Status = outcome
	if err := s.writeRepo.Update(transaction); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, transaction)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionSettled, events.TransactionSettledEvent{
		TransactionID: transaction.ID,
		AccountID:     transaction.AccountID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount.StringFixed(2),
		Outcome:       string(outcome),
	}); err != nil {
		log.Printf("Failed to publish transaction.settled event: %v", err)
	}
	return transaction, nil
}
