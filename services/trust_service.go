package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fadhlanhapp/trust-ledger/models"
	"github.com/fadhlanhapp/trust-ledger/repository"
	"github.com/fadhlanhapp/trust-ledger/utils"
)

// TrustService handles trust business logic
type TrustService struct {
	store *repository.Store
	now   func() time.Time
}

// NewTrustService creates a new trust service
func NewTrustService(store *repository.Store) *TrustService {
	return &TrustService{store: store, now: time.Now}
}

// CreateTrust validates and stores a new trust
func (s *TrustService) CreateTrust(ctx context.Context, req *models.CreateTrustRequest) (*models.Trust, error) {
	name := strings.TrimSpace(req.Name)
	if err := utils.ValidateRequired(name, "name"); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.ContactEmail)
	if err := utils.ValidateOptionalEmail(email, "contact_email"); err != nil {
		return nil, err
	}

	trust := models.NewTrust(uuid.NewString(), name, strings.TrimSpace(req.Description), email)
	trust.CreatedAt = s.now().UnixMilli()

	if err := s.store.Repositories().Trusts.Create(ctx, trust); err != nil {
		return nil, err
	}
	return trust, nil
}

// GetTrust retrieves a trust by id
func (s *TrustService) GetTrust(ctx context.Context, id string) (*models.Trust, error) {
	trust, err := s.store.Repositories().Trusts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Trust")
	}
	return trust, err
}

// ListTrusts returns all trusts, newest first
func (s *TrustService) ListTrusts(ctx context.Context) ([]models.Trust, error) {
	return s.store.Repositories().Trusts.List(ctx)
}
