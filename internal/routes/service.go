package routes

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrRouteExists     = errors.New("a route between these airports already exists")
	ErrAirportNotFound = errors.New("airport not found")
	ErrSameAirport     = errors.New("source and destination airports must differ")
	ErrRouteInUse      = errors.New("route is referenced by existing flights")
)

type Service interface {
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error)
	GetRouteByID(ctx context.Context, id uuid.UUID) (*RouteResponse, error)
	GetAllRoutes(ctx context.Context, query RouteListQuery) (*PaginatedRoutes, error)
	UpdateRoute(ctx context.Context, id uuid.UUID, req UpdateRouteRequest) (*RouteResponse, error)
	DeleteRoute(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResponse, error) {
	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		return nil, ErrAirportNotFound
	}
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, ErrAirportNotFound
	}
	if sourceID == destinationID {
		return nil, ErrSameAirport
	}

	count, err := s.repo.CountAirports(ctx, []uuid.UUID{sourceID, destinationID})
	if err != nil {
		return nil, fmt.Errorf("failed to check airports: %w", err)
	}
	if count != 2 {
		return nil, ErrAirportNotFound
	}

	existing, err := s.repo.GetByPair(ctx, sourceID, destinationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing route: %w", err)
	}
	if existing != nil {
		return nil, ErrRouteExists
	}

	route := &Route{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Distance:      req.Distance,
	}
	if err := s.repo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return s.GetRouteByID(ctx, route.ID)
}

func (s *service) GetRouteByID(ctx context.Context, id uuid.UUID) (*RouteResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	resp := rowToResponse(row)
	return &resp, nil
}

func (s *service) GetAllRoutes(ctx context.Context, query RouteListQuery) (*PaginatedRoutes, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	responses := make([]RouteResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rowToResponse(&rows[i]))
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedRoutes{
		Routes:     responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *service) UpdateRoute(ctx context.Context, id uuid.UUID, req UpdateRouteRequest) (*RouteResponse, error) {
	route, err := s.repo.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	sourceID := route.SourceID
	destinationID := route.DestinationID
	if req.SourceID != nil {
		sourceID, err = uuid.Parse(*req.SourceID)
		if err != nil {
			return nil, ErrAirportNotFound
		}
	}
	if req.DestinationID != nil {
		destinationID, err = uuid.Parse(*req.DestinationID)
		if err != nil {
			return nil, ErrAirportNotFound
		}
	}
	if sourceID == destinationID {
		return nil, ErrSameAirport
	}

	if sourceID != route.SourceID || destinationID != route.DestinationID {
		count, err := s.repo.CountAirports(ctx, []uuid.UUID{sourceID, destinationID})
		if err != nil {
			return nil, fmt.Errorf("failed to check airports: %w", err)
		}
		if count != 2 {
			return nil, ErrAirportNotFound
		}

		existing, err := s.repo.GetByPair(ctx, sourceID, destinationID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing route: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrRouteExists
		}
	}

	route.SourceID = sourceID
	route.DestinationID = destinationID
	if req.Distance != nil {
		route.Distance = *req.Distance
	}

	if err := s.repo.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	return s.GetRouteByID(ctx, route.ID)
}

func (s *service) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetRaw(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return fmt.Errorf("failed to get route: %w", err)
	}

	inUse, err := s.repo.CountFlightsUsing(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check route usage: %w", err)
	}
	if inUse > 0 {
		return ErrRouteInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return nil
}

func rowToResponse(row *RouteWithAirports) RouteResponse {
	return RouteResponse{
		ID: row.ID.String(),
		Source: RouteAirport{
			ID:   row.SourceID.String(),
			Name: row.SourceName,
			Code: row.SourceCode,
			City: row.SourceCity,
		},
		Destination: RouteAirport{
			ID:   row.DestinationID.String(),
			Name: row.DestinationName,
			Code: row.DestinationCode,
			City: row.DestinationCity,
		},
		Distance:  row.Distance,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
