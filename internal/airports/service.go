package airports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAirportNotFound   = errors.New("airport not found")
	ErrAirportCodeExists = errors.New("an airport with this code already exists")
	ErrAirportInUse      = errors.New("airport is referenced by existing routes")
)

type Service interface {
	CreateAirport(ctx context.Context, req CreateAirportRequest) (*AirportResponse, error)
	GetAirportByID(ctx context.Context, id uuid.UUID) (*AirportResponse, error)
	GetAllAirports(ctx context.Context, query AirportListQuery) (*PaginatedAirports, error)
	UpdateAirport(ctx context.Context, id uuid.UUID, req UpdateAirportRequest) (*AirportResponse, error)
	DeleteAirport(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAirport(ctx context.Context, req CreateAirportRequest) (*AirportResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing airport: %w", err)
	}
	if existing != nil {
		return nil, ErrAirportCodeExists
	}

	airport := &Airport{
		Name:           strings.TrimSpace(req.Name),
		ClosestBigCity: strings.TrimSpace(req.ClosestBigCity),
		Code:           code,
	}

	if err := s.repo.Create(ctx, airport); err != nil {
		return nil, fmt.Errorf("failed to create airport: %w", err)
	}

	resp := airport.ToResponse()
	return &resp, nil
}

func (s *service) GetAirportByID(ctx context.Context, id uuid.UUID) (*AirportResponse, error) {
	airport, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}

	resp := airport.ToResponse()
	return &resp, nil
}

func (s *service) GetAllAirports(ctx context.Context, query AirportListQuery) (*PaginatedAirports, error) {
	airports, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}

	responses := make([]AirportResponse, 0, len(airports))
	for i := range airports {
		responses = append(responses, airports[i].ToResponse())
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedAirports{
		Airports:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) UpdateAirport(ctx context.Context, id uuid.UUID, req UpdateAirportRequest) (*AirportResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.ClosestBigCity != nil {
		updates["closest_big_city"] = strings.TrimSpace(*req.ClosestBigCity)
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing airport: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrAirportCodeExists
		}
		updates["code"] = code
	}

	airport, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to update airport: %w", err)
	}

	resp := airport.ToResponse()
	return &resp, nil
}

func (s *service) DeleteAirport(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAirportNotFound
		}
		return fmt.Errorf("failed to get airport: %w", err)
	}

	inUse, err := s.repo.CountRoutesUsing(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check airport usage: %w", err)
	}
	if inUse > 0 {
		return ErrAirportInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete airport: %w", err)
	}
	return nil
}
