// Package service holds the account registry rules: account-number
// uniqueness across concurrent writers and the caller-driven balance field,
// plus the settlement event handler that applies balance deltas atomically.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/events"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// AccountWriter is the write-store collaborator. The implementation must
// reject a unique-field race with errs.ErrDuplicateKey at insert/update time;
// a bare existence pre-check is not enough.
type AccountWriter interface {
	Create(account *models.Account) error
	GetByID(id int64) (*models.Account, error)
	Update(account *models.Account) error
	Delete(id int64) error
	ExistsByAccountNumber(accountNumber string) (bool, error)
	ApplySettlement(accountID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

// AccountReader is the read-side collaborator (cache plus fallback store).
type AccountReader interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]models.Account, error)
	CacheView(ctx context.Context, account *models.Account)
	InvalidateView(ctx context.Context, id int64)
	IsTransactionProcessed(ctx context.Context, transactionID int64) bool
	MarkTransactionProcessed(ctx context.Context, transactionID int64)
}

// EventPublisher publishes lifecycle events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountService owns the account CRUD lifecycle and its uniqueness invariant.
type AccountService struct {
	writeRepo AccountWriter
	readRepo  AccountReader
	publisher EventPublisher
}

func NewAccountService(writeRepo AccountWriter, readRepo AccountReader, publisher EventPublisher) *AccountService {
	return &AccountService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// CreateAccount persists a candidate account. The existence pre-check gives
// the common case a clean error; the write store's unique constraint decides
// races, so at most one of two concurrent creators with the same number wins.
func (s *AccountService) CreateAccount(candidate *models.Account) (*models.Account, error) {
	if candidate.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", errs.ErrValidation)
	}
	exists, err := s.writeRepo.ExistsByAccountNumber(candidate.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: account number already exists: %s", errs.ErrDuplicateKey, candidate.AccountNumber)
	}

	account := &models.Account{
		AccountNumber: candidate.AccountNumber,
		CustomerID:    candidate.CustomerID,
		Type:          candidate.Type,
		Balance:       candidate.Balance,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.writeRepo.Create(account); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, account)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		CustomerID:    account.CustomerID,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}

func (s *AccountService) GetAccount(id int64) (*models.Account, error) {
	return s.readRepo.GetByID(context.Background(), id)
}

func (s *AccountService) ListAccounts() ([]models.Account, error) {
	return s.readRepo.List(context.Background())
}

func (s *AccountService) ListAccountsByCustomerID(customerID int64) ([]models.Account, error) {
	return s.readRepo.ListByCustomerID(context.Background(), customerID)
}

// UpdateAccount replaces the mutable fields of an existing account. The
// identifier and creation timestamp are never altered. A changed account
// number is re-guarded for uniqueness; an unchanged one is not re-checked, so
// it can never fail with a duplicate error against itself.
func (s *AccountService) UpdateAccount(id int64, candidate *models.Account) (*models.Account, error) {
	if candidate.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", errs.ErrValidation)
	}
	account, err := s.writeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if candidate.AccountNumber != account.AccountNumber {
		exists, err := s.writeRepo.ExistsByAccountNumber(candidate.AccountNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: account number already exists: %s", errs.ErrDuplicateKey, candidate.AccountNumber)
		}
	}

	account.AccountNumber = candidate.AccountNumber
	account.Type = candidate.Type
	account.Balance = candidate.Balance
	if err := s.writeRepo.Update(account); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, account)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
	}); err != nil {
		log.Printf("Failed to publish account.updated event: %v", err)
	}
	return account, nil
}

// DeleteAccount removes the account physically. Transactions that still
// reference it are untouched; cross-store integrity is advisory only.
func (s *AccountService) DeleteAccount(id int64) error {
	if err := s.writeRepo.Delete(id); err != nil {
		return err
	}
	ctx := context.Background()
	s.readRepo.InvalidateView(ctx, id)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID: id,
	}); err != nil {
		log.Printf("Failed to publish account.deleted event: %v", err)
	}
	return nil
}

// HandleTransactionEvent applies the balance effect of a settled transaction.
// Idempotent: duplicate delivery of the same transaction ID is detected via
// the processed set and skipped without touching the balance. Only successful
// outcomes carry a balance effect.
func (s *AccountService) HandleTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionSettled {
		return nil
	}
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction.settled payload: %w", err)
	}
	var data events.TransactionSettledEvent
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("failed to unmarshal transaction.settled event: %w", err)
	}
	if data.Outcome != string(models.StatusSuccess) {
		return nil
	}
	if s.readRepo.IsTransactionProcessed(ctx, data.TransactionID) {
		log.Printf("Transaction %d already processed, skipping duplicate event", data.TransactionID)
		return nil
	}

	amount, err := decimal.NewFromString(data.Amount)
	if err != nil {
		return fmt.Errorf("invalid settlement amount %q: %w", data.Amount, err)
	}
	delta := amount
	if models.TransactionType(data.Type) != models.TypeDeposit {
		delta = amount.Neg()
	}

	newBalance, err := s.writeRepo.ApplySettlement(data.AccountID, delta)
	if err != nil {
		return fmt.Errorf("failed to apply settlement for transaction %d: %w", data.TransactionID, err)
	}

	// Record the transaction ID before refreshing the cache so a redelivery
	// after this point is detected and skipped.
	s.readRepo.MarkTransactionProcessed(ctx, data.TransactionID)

	if account, err := s.writeRepo.GetByID(data.AccountID); err == nil {
		s.readRepo.CacheView(ctx, account)
	}
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  data.AccountID,
		NewBalance: newBalance.StringFixed(2),
		Change:     delta.StringFixed(2),
	}); err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
	return nil
}
