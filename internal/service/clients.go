package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/fastech/equiptrack/internal/errs"
	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
	"github.com/fastech/equiptrack/internal/validate"
)

// ClientParams carries the editable client fields.
type ClientParams struct {
	Name       string
	Phone      string
	Email      string
	Document   string
	Department string
	Address    string
}

// ClientService manages custodians.
type ClientService interface {
	// Register validates and creates a new client, returning its ID.
	Register(ctx context.Context, p ClientParams) (uuid.UUID, error)
	// Update validates and rewrites an existing client.
	Update(ctx context.Context, id uuid.UUID, p ClientParams) error
	// Delete removes a client unless equipment is currently with them.
	// Returns false with a nil error when the deletion is refused.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// Get loads a client by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// Search returns clients matching the term over name/phone/document.
	Search(ctx context.Context, term string) ([]model.Client, error)
}

type ClientServiceImpl struct {
	repo repository.ClientRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewClientService constructs ClientService.
func NewClientService(repo repository.ClientRepository, log *zap.Logger) *ClientServiceImpl {
	return &ClientServiceImpl{repo: repo, log: log, now: time.Now}
}

// Register creates a new client after field validation.
func (s *ClientServiceImpl) Register(ctx context.Context, p ClientParams) (uuid.UUID, error) {
	if err := validateClient(p); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	c := &model.Client{
		ID:         id,
		Name:       p.Name,
		Phone:      validate.FormatPhone(p.Phone),
		Email:      p.Email,
		Document:   p.Document,
		Department: p.Department,
		Address:    p.Address,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("client registered", zap.String("client_id", id.String()), zap.String("name", p.Name))
	return id, nil
}

// Update rewrites an existing client after field validation.
func (s *ClientServiceImpl) Update(ctx context.Context, id uuid.UUID, p ClientParams) error {
	if id == uuid.Nil {
		return fmt.Errorf("client id is required: %w", errs.ErrValidation)
	}
	if err := validateClient(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, &model.Client{
		ID:         id,
		Name:       p.Name,
		Phone:      validate.FormatPhone(p.Phone),
		Email:      p.Email,
		Document:   p.Document,
		Department: p.Department,
		Address:    p.Address,
	})
}

// Delete removes the client unless an open custody record references them.
func (s *ClientServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		s.log.Info("client deletion refused, equipment still in custody",
			zap.String("client_id", id.String()))
	}
	return deleted, nil
}

// Get loads one client.
func (s *ClientServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// Search lists clients by substring over name, phone and document.
func (s *ClientServiceImpl) Search(ctx context.Context, term string) ([]model.Client, error) {
	return s.repo.Search(ctx, term)
}

func validateClient(p ClientParams) error {
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	if ok, msg := validate.Phone(p.Phone); !ok {
		return fmt.Errorf("%s: %w", msg, errs.ErrValidation)
	}
	if ok, msg := validate.Email(p.Email); !ok {
		return fmt.Errorf("%s: %w", msg, errs.ErrValidation)
	}
	if ok, msg := validate.Document(p.Document); !ok {
		return fmt.Errorf("%s: %w", msg, errs.ErrValidation)
	}
	return nil
}
