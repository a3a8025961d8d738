package repository

import (
	"database/sql"
	"fmt"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// TransactionWriteRepository handles all state-mutating operations for
// transactions against the PostgreSQL write store.
type TransactionWriteRepository struct {
	db *sql.DB
}

func NewTransactionWriteRepository(db *sql.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create inserts the transaction and fills in the storage-assigned ID.
func (r *TransactionWriteRepository) Create(transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, transaction_type, amount, transaction_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		transaction.AccountID, string(transaction.Type), transaction.Amount,
		transaction.TransactionDate, string(transaction.Status),
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionWriteRepository) GetByID(id int64) (*models.Transaction, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, transaction_date, status
		FROM transactions
		WHERE id = $1
	`
	var transaction models.Transaction
	var transactionType, status string
	err := r.db.QueryRow(query, id).Scan(
		&transaction.ID, &transaction.AccountID, &transactionType,
		&transaction.Amount, &transaction.TransactionDate, &status,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction not found with id: %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	transaction.Type = models.TransactionType(transactionType)
	transaction.Status = models.TransactionStatus(status)
	return &transaction, nil
}

// Update writes the mutable fields: amount, type, status. Account ID and
// transaction date are immutable and never part of the statement. The WHERE
// clause re-checks the pending gate so a racing settlement cannot be
// overwritten: zero rows with an existing ID means the record left PENDING
// between the service's check and this write.
func (r *TransactionWriteRepository) Update(transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_type = $2, amount = $3, status = $4
		WHERE id = $1 AND status = $5
	`
	result, err := r.db.Exec(query,
		transaction.ID, string(transaction.Type), transaction.Amount,
		string(transaction.Status), string(models.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(transaction.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: transaction %d is no longer pending", errs.ErrInvalidStateTransition, transaction.ID)
	}
	return nil
}

// Delete removes the transaction, gated on it still being pending. Zero rows
// with an existing ID means a concurrent writer settled it first.
func (r *TransactionWriteRepository) Delete(id int64) error {
	result, err := r.db.Exec(
		`DELETE FROM transactions WHERE id = $1 AND status = $2`,
		id, string(models.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return fmt.Errorf("%w: transaction %d is no longer pending", errs.ErrInvalidStateTransition, id)
	}
	return nil
}
