package airlines

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
	ErrAirlineNotFound   = errors.New("airline not found")
	ErrAirlineCodeExists = errors.New("an airline with this code already exists")
	ErrAirlineInUse      = errors.New("airline is referenced by existing flights")
)

type Service interface {
	CreateAirline(ctx context.Context, req CreateAirlineRequest) (*AirlineResponse, error)
	GetAirlineByID(ctx context.Context, id uuid.UUID) (*AirlineResponse, error)
	GetAllAirlines(ctx context.Context, query AirlineListQuery) (*PaginatedAirlines, error)
	UpdateAirline(ctx context.Context, id uuid.UUID, req UpdateAirlineRequest) (*AirlineResponse, error)
	DeleteAirline(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAirline(ctx context.Context, req CreateAirlineRequest) (*AirlineResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing airline: %w", err)
	}
	if existing != nil {
		return nil, ErrAirlineCodeExists
	}

	airline := &Airline{
		Name:    strings.TrimSpace(req.Name),
		Code:    code,
		Country: strings.TrimSpace(req.Country),
	}

	if err := s.repo.Create(ctx, airline); err != nil {
		return nil, fmt.Errorf("failed to create airline: %w", err)
	}

	resp := airline.ToResponse()
	return &resp, nil
}

func (s *service) GetAirlineByID(ctx context.Context, id uuid.UUID) (*AirlineResponse, error) {
	airline, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirlineNotFound
		}
		return nil, fmt.Errorf("failed to get airline: %w", err)
	}

	resp := airline.ToResponse()
	return &resp, nil
}

func (s *service) GetAllAirlines(ctx context.Context, query AirlineListQuery) (*PaginatedAirlines, error) {
	airlines, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list airlines: %w", err)
	}

	responses := make([]AirlineResponse, 0, len(airlines))
	for i := range airlines {
		responses = append(responses, airlines[i].ToResponse())
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedAirlines{
		Airlines:   responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) UpdateAirline(ctx context.Context, id uuid.UUID, req UpdateAirlineRequest) (*AirlineResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Country != nil {
		updates["country"] = strings.TrimSpace(*req.Country)
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing airline: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrAirlineCodeExists
		}
		updates["code"] = code
	}

	airline, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirlineNotFound
		}
		return nil, fmt.Errorf("failed to update airline: %w", err)
	}

	resp := airline.ToResponse()
	return &resp, nil
}

func (s *service) DeleteAirline(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAirlineNotFound
		}
		return fmt.Errorf("failed to get airline: %w", err)
	}

	inUse, err := s.repo.CountFlightsUsing(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check airline usage: %w", err)
	}
	if inUse > 0 {
		return ErrAirlineInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete airline: %w", err)
	}
	return nil
}
