package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/repository"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// AreaService coordinates area workflows.
type AreaService struct {
	areas repository.AreaRepository
}

// NewAreaService constructs the service.
func NewAreaService(areas repository.AreaRepository) *AreaService {
	return &AreaService{areas: areas}
}

// Create records a new area with a unique name.
func (s *AreaService) Create(ctx context.Context, name string) (*domain.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	area := &domain.Area{Name: name}
	if err := s.areas.Create(ctx, area); err != nil {
		return nil, mapAreaErr(err, name)
	}
	return area, nil
}

// List returns all areas sorted by name.
func (s *AreaService) List(ctx context.Context) ([]domain.Area, error) {
	areas, err := s.areas.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return areas, nil
}

// Get fetches one area.
func (s *AreaService) Get(ctx context.Context, id string) (*domain.Area, error) {
	area, err := s.areas.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "area", id)
	}
	return area, nil
}

// Update renames an area.
func (s *AreaService) Update(ctx context.Context, id, name string) (*domain.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	area := &domain.Area{ID: id, Name: name}
	if err := s.areas.Update(ctx, area); err != nil {
		if mapped := mapAreaErr(err, name); apperrors.IsCode(mapped, "CONFLICT") {
			return nil, mapped
		}
		return nil, mapLookupErr(err, "area", id)
	}
	return s.areas.GetByID(ctx, id)
}

// Delete removes one area.
func (s *AreaService) Delete(ctx context.Context, id string) error {
	if err := s.areas.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "area", id)
	}
	return nil
}

// mapAreaErr translates a unique-name violation to a conflict.
func mapAreaErr(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.NewConflict("area name already exists", map[string]any{"name": name})
	}
	return apperrors.MapError(err)
}
