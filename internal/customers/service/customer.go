package service

import (
	"context"
	"errors"
	"fmt"
	customerserrors "innkeep/internal/customers/errors"
	"innkeep/internal/customers/repository"
	"innkeep/internal/customers/validator"
	"innkeep/pkg/clock"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
	Update(ctx context.Context, id string, customer *model.Customer) error
	Delete(ctx context.Context, id string) error
}

type ReservationReferenceChecker interface {
	ExistsByCustomerID(ctx context.Context, customerID string) (bool, error)
}

type customerService struct {
	repo         repository.CustomerRepository
	reservations ReservationReferenceChecker
	validator    *validator.CustomerValidator
	clock        clock.Clock
	cfg          *config.Config
	log          *logger.Logger
}

func NewCustomerService(
	repo repository.CustomerRepository,
	reservations ReservationReferenceChecker,
	validator *validator.CustomerValidator,
	clk clock.Clock,
	cfg *config.Config,
) CustomerService {
	if clk == nil {
		clk = clock.System()
	}
	return &customerService{
		repo:         repo,
		reservations: reservations,
		validator:    validator,
		clock:        clk,
		cfg:          cfg,
		log:          cfg.Log.Component("customers.service"),
	}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	s.sanitize(customer)
	s.applyDefaults(customer)

	if err := s.validator.Validate(customer); err != nil {
		s.log.Warn("Customer validation failed", "error", err)
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyUniqueEmail(sessCtx, customer.Email, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, customer); err != nil {
			return s.translateWriteError(err, customer.Email, "Failed to create customer")
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to create customer", err, "email", customer.Email)
		return err
	}

	s.log.Info("Customer created successfully", "id", customer.ID)
	return nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "Failed to retrieve customer")
	}
	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	var count int64
	var customers []*model.Customer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.log.Error("Failed to count customers", "error", errCount)
			errCount = apperrors.Internal("Failed to count customers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		customers, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.log.Error("Failed to list customers", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve customers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return customers, count, nil
}

// Update overwrites name, email and phone. The stored created_at is kept and
// copied back onto customer.
func (s *customerService) Update(ctx context.Context, id string, customer *model.Customer) error {
	if id == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}
	if customer != nil && customer.ID != id {
		return apperrors.BusinessRule("Customer ID in path does not match ID in body").WithDetails(map[string]any{
			"path_id": id,
			"body_id": customer.ID,
		})
	}

	s.sanitize(customer)
	if err := s.validator.Validate(customer); err != nil {
		s.log.Warn("Customer validation failed", "id", id, "error", err)
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.translateLookupError(err, id, "Failed to check customer existence")
		}
		if err := s.verifyUniqueEmail(sessCtx, customer.Email, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, customer); err != nil {
			if errors.Is(err, customerserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Customer", id)
			}
			return s.translateWriteError(err, customer.Email, "Failed to update customer")
		}
		customer.CreatedAt = existing.CreatedAt
		return nil
	})
	if err != nil {
		s.logFailure("Failed to update customer", err, "id", id)
		return err
	}

	s.log.Info("Customer updated successfully", "id", id)
	return nil
}

// Delete refuses to remove a customer that reservations still reference.
func (s *customerService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.reservations.ExistsByCustomerID(ctx, id)
	if err != nil {
		s.log.Error("Failed to check customer references", "id", id, "error", err)
		return apperrors.Internal("Failed to check customer references", err)
	}
	if referenced {
		s.log.Warn("Refusing to delete customer with reservations", "id", id)
		return apperrors.BusinessRule("Customer is referenced by reservations and cannot be deleted").
			WithDetails(map[string]any{"id": id})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateLookupError(err, id, "Failed to delete customer")
	}

	s.log.Info("Customer deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

// sanitize leaves an unparseable phone as typed so validation can report it.
func (s *customerService) sanitize(c *model.Customer) {
	if c == nil {
		return
	}
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Email = sanitizer.NormalizeEmail(c.Email)
	if phone := sanitizer.NormalizePhone(c.Phone, s.cfg.PhoneRegions); phone != "" {
		c.Phone = phone
	} else {
		c.Phone = strings.TrimSpace(c.Phone)
	}
}

func (s *customerService) applyDefaults(c *model.Customer) {
	if c == nil || c.CreatedAt != nil {
		return
	}
	today := clock.Today(s.clock, s.cfg.Location)
	c.CreatedAt = &today
}

func (s *customerService) verifyUniqueEmail(ctx context.Context, email, excludeID string) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check customer email", err)
	}
	if exists {
		return duplicateEmail(email)
	}
	return nil
}

func (s *customerService) translateLookupError(err error, id, message string) error {
	switch {
	case errors.Is(err, customerserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Customer", id)
	case errors.Is(err, customerserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid customer ID format")
	default:
		s.log.Error(message, "id", id, "error", err)
		return apperrors.Internal(message, err)
	}
}

func (s *customerService) translateWriteError(err error, email, message string) error {
	if errors.Is(err, customerserrors.ErrDuplicateEmail) {
		return duplicateEmail(email)
	}
	return apperrors.Internal(message, err)
}

func (s *customerService) logFailure(message string, err error, args ...any) {
	args = append(args, "error", err)
	if apperrors.HasCode(err, apperrors.CodeInternal) || !apperrors.IsAppError(err) {
		s.log.Error(message, args...)
		return
	}
	s.log.Warn(message, args...)
}

func duplicateEmail(email string) error {
	return apperrors.BusinessRule(fmt.Sprintf("Customer with email %s already exists", email)).
		WithDetails(map[string]any{"field": "email"})
}
