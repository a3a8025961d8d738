package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Srinith2224/Banking-Systems/shared/errs"
	"github.com/Srinith2224/Banking-Systems/shared/models"
)

const uniqueViolation = "23505"

// CustomerWriteRepository handles all state-mutating operations for customers
// against the PostgreSQL write store.
type CustomerWriteRepository struct {
	db *sql.DB
}

func NewCustomerWriteRepository(db *sql.DB) *CustomerWriteRepository {
	return &CustomerWriteRepository{db: db}
}

// Create inserts the customer and fills in the storage-assigned ID. A racing
// insert with the same email loses with ErrDuplicateKey.
func (r *CustomerWriteRepository) Create(customer *models.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(query,
		customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.Address, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: email already exists: %s", errs.ErrDuplicateKey, customer.Email)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerWriteRepository) GetByID(id int64) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, address, created_at
		FROM customers
		WHERE id = $1
	`
	var customer models.Customer
	err := r.db.QueryRow(query, id).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName,
		&customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: customer not found with id: %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// Update replaces the mutable fields of a customer. ID and created_at are
// never touched. An email collision with another record loses to the UNIQUE
// constraint with ErrDuplicateKey.
func (r *CustomerWriteRepository) Update(customer *models.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6
		WHERE id = $1
	`
	result, err := r.db.Exec(query,
		customer.ID, customer.FirstName, customer.LastName,
		customer.Email, customer.Phone, customer.Address,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: email already exists: %s", errs.ErrDuplicateKey, customer.Email)
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: customer not found with id: %d", errs.ErrNotFound, customer.ID)
	}
	return nil
}

// Delete physically removes the customer. Accounts referencing the customer
// are left in place.
func (r *CustomerWriteRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: customer not found with id: %d", errs.ErrNotFound, id)
	}
	return nil
}

// ExistsByEmail is the advisory pre-check; the UNIQUE constraint decides
// races. Comparison is exact-match and case-sensitive, no folding.
func (r *CustomerWriteRepository) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
