package services

import (
	"context"
	"strings"

	"jobsite-tracker/internal/domain"
	"jobsite-tracker/internal/errors"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/validation"
)

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.ProfileValidator
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(repo sqlite.Repository, v *validation.Validator) ProfileService {
	return &profileServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewProfileValidator(v),
	}
}

// CreateProfile creates a profile; an empty role means a regular user
func (s *profileServiceImpl) CreateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Role == "" {
		p.Role = domain.RoleUser
	}

	if err := s.validator.ValidateProfile(p); err != nil {
		return nil, invalid(err)
	}

	row := s.mapper.Profile.ToDatabase(p)
	if err := s.repo.CreateProfile(ctx, &row); err != nil {
		return nil, err
	}

	created := s.mapper.Profile.FromDatabase(row)
	return &created, nil
}

// GetProfile retrieves a profile by its ID
func (s *profileServiceImpl) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	if id <= 0 {
		return nil, errors.NewValidationError("invalid profile ID", nil)
	}

	row, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	p := s.mapper.Profile.FromDatabase(*row)
	return &p, nil
}

// ListProfiles lists profiles visible to the actor
func (s *profileServiceImpl) ListProfiles(ctx context.Context, actor domain.Profile) ([]domain.Profile, error) {
	if !actor.IsAdmin() {
		self, err := s.GetProfile(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return []domain.Profile{*self}, nil
	}

	rows, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Profile.FromDatabaseSlice(rows), nil
}
