package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
	sharedredis "github.com/Srinith2224/Banking-Systems/shared/redis"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionReadRepository serves transaction reads from Redis with
// PostgreSQL fallback. Lists always go to PostgreSQL so ordering and
// filtering reflect the write store.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.Transaction]
}

func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.Transaction](redisClient, 0),
	}
}

func transactionViewKey(id int64) string {
	return transactionViewKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *TransactionReadRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	if view, ok := r.cache.Get(ctx, transactionViewKey(id)); ok {
		return view, nil
	}

	query := `
		SELECT id, account_id, transaction_type, amount, transaction_date, status
		FROM transactions
		WHERE id = $1
	`
	var transaction models.Transaction
	var transactionType, status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
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

	r.CacheView(ctx, &transaction)
	return &transaction, nil
}

// List returns transactions, optionally narrowed by status and type (zero
// values mean no filtering), newest first with id as the tie-break.
func (r *TransactionReadRepository) List(ctx context.Context, status models.TransactionStatus, txType models.TransactionType) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, transaction_date, status
		FROM transactions
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR transaction_type = $2)
		ORDER BY transaction_date DESC, id DESC
	`
	return r.list(ctx, query, string(status), string(txType))
}

// ListByAccountID returns one account's transactions ordered most recent
// first by transaction date. Equal timestamps fall back to id descending;
// ids are monotone per store, which makes the tie-break reproducible.
func (r *TransactionReadRepository) ListByAccountID(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, transaction_type, amount, transaction_date, status
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, id DESC
	`
	return r.list(ctx, query, accountID)
}

func (r *TransactionReadRepository) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var transaction models.Transaction
		var transactionType, status string
		if err := rows.Scan(
			&transaction.ID, &transaction.AccountID, &transactionType,
			&transaction.Amount, &transaction.TransactionDate, &status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transaction.Type = models.TransactionType(transactionType)
		transaction.Status = models.TransactionStatus(status)
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionReadRepository) CacheView(ctx context.Context, transaction *models.Transaction) {
	r.cache.Set(ctx, transactionViewKey(transaction.ID), transaction)
}

func (r *TransactionReadRepository) InvalidateView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, transactionViewKey(id))
}
