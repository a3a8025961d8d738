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

const customerViewKeyPrefix = "customer:view:"

// CustomerReadRepository serves customer reads from Redis with PostgreSQL
// fallback, warming the cache on cold reads. The email lookup always goes to
// PostgreSQL: it is the uniqueness field and must reflect the write store.
type CustomerReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.Customer]
}

func NewCustomerReadRepository(db *sql.DB, redisClient *goredis.Client) *CustomerReadRepository {
	return &CustomerReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.Customer](redisClient, 0),
	}
}

func customerViewKey(id int64) string {
	return customerViewKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *CustomerReadRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if view, ok := r.cache.Get(ctx, customerViewKey(id)); ok {
		return view, nil
	}

	customer, err := r.scanOne(ctx, `
		SELECT id, first_name, last_name, email, phone, address, created_at
		FROM customers
		WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: customer not found with id: %d", errs.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	r.CacheView(ctx, customer)
	return customer, nil
}

// GetByEmail is the singular unique-field lookup.
func (r *CustomerReadRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	customer, err := r.scanOne(ctx, `
		SELECT id, first_name, last_name, email, phone, address, created_at
		FROM customers
		WHERE email = $1
	`, email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: customer not found with email: %s", errs.ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (r *CustomerReadRepository) scanOne(ctx context.Context, query string, arg any) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName,
		&customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerReadRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, address, created_at
		FROM customers
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		if err := rows.Scan(
			&customer.ID, &customer.FirstName, &customer.LastName,
			&customer.Email, &customer.Phone, &customer.Address, &customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *CustomerReadRepository) CacheView(ctx context.Context, customer *models.Customer) {
	r.cache.Set(ctx, customerViewKey(customer.ID), customer)
}

func (r *CustomerReadRepository) InvalidateView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, customerViewKey(id))
}
