package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
	sharedredis "github.com/Srinith2224/Banking-Systems/shared/redis"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository serves account reads. Redis holds the read model;
// PostgreSQL is the transparent fallback, warming the cache on every cold
// read. List queries always go to PostgreSQL.
type AccountReadRepository struct {
	db    *sql.DB
	redis *goredis.Client
	cache *sharedredis.ViewCache[models.Account]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		redis: redisClient,
		cache: sharedredis.NewViewCache[models.Account](redisClient, 0),
	}
}

func accountViewKey(id int64) string {
	return accountViewKeyPrefix + strconv.FormatInt(id, 10)
}

// GetByID returns an account, trying Redis first then PostgreSQL.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if view, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
		return view, nil
	}

	query := `
		SELECT id, account_number, customer_id, account_type, balance, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	var accountType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.AccountNumber, &account.CustomerID,
		&accountType, &account.Balance, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: account not found with id: %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	account.Type = models.AccountType(accountType)

	r.CacheView(ctx, &account)
	return &account, nil
}

// List returns all accounts from PostgreSQL, newest first.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.Account, error) {
	return r.list(ctx, `
		SELECT id, account_number, customer_id, account_type, balance, created_at
		FROM accounts
		ORDER BY created_at DESC, id DESC
	`)
}

// ListByCustomerID returns all accounts held by one customer. The customer id
// is a plain secondary index; nothing guards it.
func (r *AccountReadRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]models.Account, error) {
	return r.list(ctx, `
		SELECT id, account_number, customer_id, account_type, balance, created_at
		FROM accounts
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
	`, customerID)
}

func (r *AccountReadRepository) list(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		var accountType string
		if err := rows.Scan(
			&account.ID, &account.AccountNumber, &account.CustomerID,
			&accountType, &account.Balance, &account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Type = models.AccountType(accountType)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// CacheView refreshes the Redis read model after a mutation.
func (r *AccountReadRepository) CacheView(ctx context.Context, account *models.Account) {
	r.cache.Set(ctx, accountViewKey(account.ID), account)
}

// InvalidateView drops the read model entry for a deleted account.
func (r *AccountReadRepository) InvalidateView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, accountViewKey(id))
}

const processedTxnKeyPrefix = "processed:txn:"

// IsTransactionProcessed reports whether a settlement has already been
// applied for this transaction. Guards against duplicate delivery under
// at-least-once stream semantics.
func (r *AccountReadRepository) IsTransactionProcessed(ctx context.Context, transactionID int64) bool {
	val, err := r.redis.Exists(ctx, processedTxnKeyPrefix+strconv.FormatInt(transactionID, 10)).Result()
	return err == nil && val > 0
}

// MarkTransactionProcessed records that a settlement has been applied. The
// key expires after 72 hours, comfortably past any redelivery window.
func (r *AccountReadRepository) MarkTransactionProcessed(ctx context.Context, transactionID int64) {
	key := processedTxnKeyPrefix + strconv.FormatInt(transactionID, 10)
	if err := r.redis.Set(ctx, key, "1", 72*time.Hour).Err(); err != nil {
		log.Printf("Failed to mark transaction %d as processed: %v", transactionID, err)
	}
}
