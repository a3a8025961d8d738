// Package service holds the customer registry rules: email uniqueness across
// concurrent writers and plain CRUD over the customers store.
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

// CustomerWriter is the write-store collaborator. Implementations must reject
// a unique-email race with errs.ErrDuplicateKey at insert/update time.
type CustomerWriter interface {
	Create(customer *models.Customer) error
	GetByID(id int64) (*models.Customer, error)
	Update(customer *models.Customer) error
	Delete(id int64) error
	ExistsByEmail(email string) (bool, error)
}

// CustomerReader is the read-side collaborator.
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	CacheView(ctx context.Context, customer *models.Customer)
	InvalidateView(ctx context.Context, id int64)
}

type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// CustomerService owns the customer CRUD lifecycle and its email uniqueness
// invariant.
type CustomerService struct {
	writeRepo CustomerWriter
	readRepo  CustomerReader
	publisher EventPublisher
}

func NewCustomerService(writeRepo CustomerWriter, readRepo CustomerReader, publisher EventPublisher) *CustomerService {
	return &CustomerService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// CreateCustomer persists a candidate customer. The pre-check gives the
// common case a clean error; the write store's unique constraint decides
// races between concurrent creators.
func (s *CustomerService) CreateCustomer(candidate *models.Customer) (*models.Customer, error) {
	if candidate.FirstName == "" || candidate.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name must not be empty", errs.ErrValidation)
	}
	exists, err := s.writeRepo.ExistsByEmail(candidate.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already exists: %s", errs.ErrDuplicateKey, candidate.Email)
	}

	customer := &models.Customer{
		FirstName: candidate.FirstName,
		LastName:  candidate.LastName,
		Email:     candidate.Email,
		Phone:     candidate.Phone,
		Address:   candidate.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.writeRepo.Create(customer); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, customer)
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, events.CustomerCreated, events.CustomerCreatedEvent{
		CustomerID: customer.ID,
		Email:      customer.Email,
	}); err != nil {
		log.Printf("Failed to publish customer.created event: %v", err)
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(id int64) (*models.Customer, error) {
	return s.readRepo.GetByID(context.Background(), id)
}

func (s *CustomerService) GetCustomerByEmail(email string) (*models.Customer, error) {
	return s.readRepo.GetByEmail(context.Background(), email)
}

func (s *CustomerService) ListCustomers() ([]models.Customer, error) {
	return s.readRepo.List(context.Background())
}

// UpdateCustomer replaces the mutable fields of an existing customer. An
// unchanged email is never re-guarded, so updating a record against itself
// cannot fail with a duplicate error.
func (s *CustomerService) UpdateCustomer(id int64, candidate *models.Customer) (*models.Customer, error) {
	if candidate.FirstName == "" || candidate.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name must not be empty", errs.ErrValidation)
	}
	customer, err := s.writeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if candidate.Email != customer.Email {
		exists, err := s.writeRepo.ExistsByEmail(candidate.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: email already exists: %s", errs.ErrDuplicateKey, candidate.Email)
		}
	}

	customer.FirstName = candidate.FirstName
	customer.LastName = candidate.LastName
	customer.Email = candidate.Email
	customer.Phone = candidate.Phone
	customer.Address = candidate.Address
	if err := s.writeRepo.Update(customer); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheView(ctx, customer)
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, events.CustomerUpdated, events.CustomerUpdatedEvent{
		CustomerID: customer.ID,
		Email:      customer.Email,
	}); err != nil {
		log.Printf("Failed to publish customer.updated event: %v", err)
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(id int64) error {
	if err := s.writeRepo.Delete(id); err != nil {
		return err
	}
	ctx := context.Background()
	s.readRepo.InvalidateView(ctx, id)
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, events.CustomerDeleted, events.CustomerDeletedEvent{
		CustomerID: id,
	}); err != nil {
		log.Printf("Failed to publish customer.deleted event: %v", err)
	}
	return nil
}
