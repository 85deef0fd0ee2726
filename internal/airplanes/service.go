package airplanes

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
	ErrTypeNotFound     = errors.New("airplane type not found")
	ErrTypeNameExists   = errors.New("an airplane type with this name already exists")
	ErrTypeInUse        = errors.New("airplane type is referenced by existing airplanes")
	ErrAirplaneNotFound = errors.New("airplane not found")
	ErrAirplaneInUse    = errors.New("airplane is referenced by existing flights")
)

type Service interface {
	CreateType(ctx context.Context, req CreateAirplaneTypeRequest) (*AirplaneTypeResponse, error)
	GetTypes(ctx context.Context) ([]AirplaneTypeResponse, error)
	UpdateType(ctx context.Context, id uuid.UUID, req UpdateAirplaneTypeRequest) (*AirplaneTypeResponse, error)
	DeleteType(ctx context.Context, id uuid.UUID) error

	CreateAirplane(ctx context.Context, req CreateAirplaneRequest) (*AirplaneResponse, error)
	GetAirplaneByID(ctx context.Context, id uuid.UUID) (*AirplaneResponse, error)
	GetAllAirplanes(ctx context.Context, query AirplaneListQuery) (*PaginatedAirplanes, error)
	UpdateAirplane(ctx context.Context, id uuid.UUID, req UpdateAirplaneRequest) (*AirplaneResponse, error)
	DeleteAirplane(ctx context.Context, id uuid.UUID) error
	SetImage(ctx context.Context, id uuid.UUID, imagePath string) (*AirplaneResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateType(ctx context.Context, req CreateAirplaneTypeRequest) (*AirplaneTypeResponse, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.repo.GetTypeByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing airplane type: %w", err)
	}
	if existing != nil {
		return nil, ErrTypeNameExists
	}

	t := &AirplaneType{Name: name}
	if err := s.repo.CreateType(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create airplane type: %w", err)
	}

	return typeToResponse(t), nil
}

func (s *service) GetTypes(ctx context.Context) ([]AirplaneTypeResponse, error) {
	types, err := s.repo.GetTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list airplane types: %w", err)
	}

	responses := make([]AirplaneTypeResponse, 0, len(types))
	for i := range types {
		responses = append(responses, *typeToResponse(&types[i]))
	}
	return responses, nil
}

func (s *service) UpdateType(ctx context.Context, id uuid.UUID, req UpdateAirplaneTypeRequest) (*AirplaneTypeResponse, error) {
	t, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get airplane type: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.GetTypeByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing airplane type: %w", err)
	}
	if existing != nil && existing.ID != id {
		return nil, ErrTypeNameExists
	}

	t.Name = name
	if err := s.repo.UpdateType(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update airplane type: %w", err)
	}

	return typeToResponse(t), nil
}

func (s *service) DeleteType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetTypeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTypeNotFound
		}
		return fmt.Errorf("failed to get airplane type: %w", err)
	}

	inUse, err := s.repo.CountAirplanesOfType(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check airplane type usage: %w", err)
	}
	if inUse > 0 {
		return ErrTypeInUse
	}

	if err := s.repo.DeleteType(ctx, id); err != nil {
		return fmt.Errorf("failed to delete airplane type: %w", err)
	}
	return nil
}

func (s *service) CreateAirplane(ctx context.Context, req CreateAirplaneRequest) (*AirplaneResponse, error) {
	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return nil, ErrTypeNotFound
	}

	t, err := s.repo.GetTypeByID(ctx, typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to get airplane type: %w", err)
	}

	airplane := &Airplane{
		Name:       strings.TrimSpace(req.Name),
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
		TypeID:     t.ID,
	}

	if err := s.repo.Create(ctx, airplane); err != nil {
		return nil, fmt.Errorf("failed to create airplane: %w", err)
	}

	airplane.Type = t
	resp := airplane.ToResponse()
	return &resp, nil
}

func (s *service) GetAirplaneByID(ctx context.Context, id uuid.UUID) (*AirplaneResponse, error) {
	airplane, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, fmt.Errorf("failed to get airplane: %w", err)
	}

	resp := airplane.ToResponse()
	return &resp, nil
}

func (s *service) GetAllAirplanes(ctx context.Context, query AirplaneListQuery) (*PaginatedAirplanes, error) {
	airplanes, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list airplanes: %w", err)
	}

	responses := make([]AirplaneResponse, 0, len(airplanes))
	for i := range airplanes {
		responses = append(responses, airplanes[i].ToResponse())
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedAirplanes{
		Airplanes:  responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// UpdateAirplane applies partial updates. Changing the seat grid is
// refused while flights reference the airplane, since sold tickets are
// validated against it.
func (s *service) UpdateAirplane(ctx context.Context, id uuid.UUID, req UpdateAirplaneRequest) (*AirplaneResponse, error) {
	airplane, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, fmt.Errorf("failed to get airplane: %w", err)
	}

	resized := (req.Rows != nil && *req.Rows != airplane.Rows) ||
		(req.SeatsInRow != nil && *req.SeatsInRow != airplane.SeatsInRow)
	if resized {
		inUse, err := s.repo.CountFlightsUsing(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check airplane usage: %w", err)
		}
		if inUse > 0 {
			return nil, ErrAirplaneInUse
		}
	}

	if req.Name != nil {
		airplane.Name = strings.TrimSpace(*req.Name)
	}
	if req.Rows != nil {
		airplane.Rows = *req.Rows
	}
	if req.SeatsInRow != nil {
		airplane.SeatsInRow = *req.SeatsInRow
	}
	if req.TypeID != nil {
		typeID, err := uuid.Parse(*req.TypeID)
		if err != nil {
			return nil, ErrTypeNotFound
		}
		t, err := s.repo.GetTypeByID(ctx, typeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTypeNotFound
			}
			return nil, fmt.Errorf("failed to get airplane type: %w", err)
		}
		airplane.TypeID = t.ID
		airplane.Type = t
	}

	if err := s.repo.Update(ctx, airplane); err != nil {
		return nil, fmt.Errorf("failed to update airplane: %w", err)
	}

	resp := airplane.ToResponse()
	return &resp, nil
}

func (s *service) DeleteAirplane(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAirplaneNotFound
		}
		return fmt.Errorf("failed to get airplane: %w", err)
	}

	inUse, err := s.repo.CountFlightsUsing(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check airplane usage: %w", err)
	}
	if inUse > 0 {
		return ErrAirplaneInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete airplane: %w", err)
	}
	return nil
}

// SetImage stores the relative path of an uploaded image for the
// airplane. The caller is responsible for saving the file itself.
func (s *service) SetImage(ctx context.Context, id uuid.UUID, imagePath string) (*AirplaneResponse, error) {
	airplane, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAirplaneNotFound
		}
		return nil, fmt.Errorf("failed to get airplane: %w", err)
	}

	airplane.ImagePath = imagePath
	if err := s.repo.Update(ctx, airplane); err != nil {
		return nil, fmt.Errorf("failed to update airplane image: %w", err)
	}

	resp := airplane.ToResponse()
	return &resp, nil
}

func typeToResponse(t *AirplaneType) *AirplaneTypeResponse {
	return &AirplaneTypeResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
