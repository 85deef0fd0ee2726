package crew

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCrewNotFound = errors.New("crew member not found")

type Service interface {
	CreateCrew(ctx context.Context, req CreateCrewRequest) (*CrewResponse, error)
	GetCrewByID(ctx context.Context, id uuid.UUID) (*CrewResponse, error)
	GetAllCrew(ctx context.Context, query CrewListQuery) (*PaginatedCrew, error)
	UpdateCrew(ctx context.Context, id uuid.UUID, req UpdateCrewRequest) (*CrewResponse, error)
	DeleteCrew(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCrew(ctx context.Context, req CreateCrewRequest) (*CrewResponse, error) {
	member := &Crew{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create crew member: %w", err)
	}

	resp := member.ToResponse()
	return &resp, nil
}

func (s *service) GetCrewByID(ctx context.Context, id uuid.UUID) (*CrewResponse, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, fmt.Errorf("failed to get crew member: %w", err)
	}

	resp := member.ToResponse()
	return &resp, nil
}

func (s *service) GetAllCrew(ctx context.Context, query CrewListQuery) (*PaginatedCrew, error) {
	members, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}

	responses := make([]CrewResponse, 0, len(members))
	for i := range members {
		responses = append(responses, members[i].ToResponse())
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedCrew{
		Crew:       responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) UpdateCrew(ctx context.Context, id uuid.UUID, req UpdateCrewRequest) (*CrewResponse, error) {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}

	member, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, fmt.Errorf("failed to update crew member: %w", err)
	}

	resp := member.ToResponse()
	return &resp, nil
}

func (s *service) DeleteCrew(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCrewNotFound
		}
		return fmt.Errorf("failed to get crew member: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete crew member: %w", err)
	}
	return nil
}
