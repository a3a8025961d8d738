package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

// pq error code for a violated UNIQUE constraint. The database constraint is
// what serializes racing creators; this code is how the loser finds out.
const uniqueViolation = "23505"

// AccountWriteRepository handles all state-mutating operations for accounts
// against the PostgreSQL write store (source of truth).
type AccountWriteRepository struct {
	db *sql.DB
}

func NewAccountWriteRepository(db *sql.DB) *AccountWriteRepository {
	return &AccountWriteRepository{db: db}
}

// Create inserts the account and fills in the storage-assigned ID. A racing
// insert with the same account number loses with ErrDuplicateKey.
func (r *AccountWriteRepository) Create(account *models.Account) error {
	query := `
		INSERT INTO accounts (account_number, customer_id, account_type, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		account.AccountNumber, account.CustomerID, string(account.Type),
		account.Balance, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: account number already exists: %s", errs.ErrDuplicateKey, account.AccountNumber)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountWriteRepository) GetByID(id int64) (*models.Account, error) {
	query := `
		SELECT id, account_number, customer_id, account_type, balance, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	var accountType string
	err := r.db.QueryRow(query, id).Scan(
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
	return &account, nil
}

// Update replaces the mutable fields of an account. ID and created_at are
// never touched. A changed account number colliding with another record
// loses to the UNIQUE constraint with ErrDuplicateKey.
func (r *AccountWriteRepository) Update(account *models.Account) error {
	query := `
		UPDATE accounts
		SET account_number = $2, account_type = $3, balance = $4
		WHERE id = $1
	`
	result, err := r.db.Exec(query, account.ID, account.AccountNumber, string(account.Type), account.Balance)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: account number already exists: %s", errs.ErrDuplicateKey, account.AccountNumber)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account not found with id: %d", errs.ErrNotFound, account.ID)
	}
	return nil
}

// Delete physically removes the account. Transactions referencing it are
// left in place; there is no cross-store cleanup.
func (r *AccountWriteRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account not found with id: %d", errs.ErrNotFound, id)
	}
	return nil
}

// ExistsByAccountNumber is the advisory pre-check for the friendly duplicate
// error on the common path. Correctness never depends on it: the UNIQUE
// constraint decides races.
func (r *AccountWriteRepository) ExistsByAccountNumber(accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

// ApplySettlement applies a signed balance delta as an atomic
// read-modify-write: the row is locked with SELECT ... FOR UPDATE inside one
// SQL transaction so concurrent settlements against the same account cannot
// lose updates. Returns the new balance.
func (r *AccountWriteRepository) ApplySettlement(accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin settlement: %w", err)
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	err = tx.QueryRow(`SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, fmt.Errorf("%w: account not found with id: %d", errs.ErrNotFound, accountID)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to lock account: %w", err)
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: balance would go negative on account %d", errs.ErrInsufficientFunds, accountID)
	}

	if _, err := tx.Exec(`UPDATE accounts SET balance = $2 WHERE id = $1`, accountID, newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return newBalance, nil
}
