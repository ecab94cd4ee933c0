package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ericsromero/planner/internal/domain"
	"github.com/ericsromero/planner/internal/repo"
)

// LinkService implements business logic for Link operations.
type LinkService struct {
	trips repo.TripRepo
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService backed by the provided repos.
func NewLinkService(trips repo.TripRepo, links repo.LinkRepo) *LinkService {
	return &LinkService{trips: trips, links: links}
}

// Create validates and persists a new link on an existing trip.
// Returns domain.ErrNotFound if the trip does not exist, domain.ErrValidation
// if the title is empty or the URL is not absolute.
func (s *LinkService) Create(ctx context.Context, link domain.Link) (domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, link.TripID); err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}
	if err := validateLink(link); err != nil {
		return domain.Link{}, err
	}
	result, err := s.links.Create(ctx, link)
	if err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}
	return result, nil
}

// ListByTripID returns all links of a trip in a stable order.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LinkService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTripID: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}

// validateLink requires a non-empty title and an absolute http(s) URL.
func validateLink(link domain.Link) error {
	if strings.TrimSpace(link.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	u, err := url.Parse(link.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: url must be absolute", domain.ErrValidation)
	}
	return nil
}
