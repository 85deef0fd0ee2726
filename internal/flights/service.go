package flights

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skyport/internal/crew"
	"skyport/internal/seatledger"
	"skyport/pkg/logger"
)

var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrAirplaneNotFound = errors.New("airplane not found")
	ErrAirlineNotFound  = errors.New("airline not found")
	ErrCrewNotFound     = errors.New("one or more crew members not found")
	ErrInvalidTimes     = errors.New("arrival time must be after departure time")
	ErrFlightHasTickets = errors.New("flight has sold tickets")
)

type Service interface {
	CreateFlight(ctx context.Context, req CreateFlightRequest) (*FlightDetailResponse, error)
	GetFlightByID(ctx context.Context, id uuid.UUID) (*FlightDetailResponse, error)
	GetAllFlights(ctx context.Context, query FlightListQuery) (*PaginatedFlights, error)
	UpdateFlight(ctx context.Context, id uuid.UUID, req UpdateFlightRequest) (*FlightDetailResponse, error)
	DeleteFlight(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	ledger *seatledger.Ledger
	log    *logger.Logger
}

func NewService(repo Repository, ledger *seatledger.Ledger) Service {
	return &service{
		repo:   repo,
		ledger: ledger,
		log:    logger.GetDefault(),
	}
}

func (s *service) CreateFlight(ctx context.Context, req CreateFlightRequest) (*FlightDetailResponse, error) {
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, ErrInvalidTimes
	}

	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, ErrRouteNotFound
	}
	airplaneID, err := uuid.Parse(req.AirplaneID)
	if err != nil {
		return nil, ErrAirplaneNotFound
	}
	airlineID, err := uuid.Parse(req.AirlineID)
	if err != nil {
		return nil, ErrAirlineNotFound
	}

	if err := s.checkReferences(ctx, routeID, airplaneID, airlineID); err != nil {
		return nil, err
	}

	members, err := s.resolveCrew(ctx, req.CrewIDs)
	if err != nil {
		return nil, err
	}

	flight := &Flight{
		RouteID:       routeID,
		AirplaneID:    airplaneID,
		AirlineID:     airlineID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Crew:          members,
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	return s.GetFlightByID(ctx, flight.ID)
}

func (s *service) GetFlightByID(ctx context.Context, id uuid.UUID) (*FlightDetailResponse, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	members, err := s.repo.GetCrewOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load flight crew: %w", err)
	}

	taken, err := s.ledger.TakenSeats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load taken seats: %w", err)
	}

	crewResponses := make([]crew.CrewResponse, 0, len(members))
	for i := range members {
		crewResponses = append(crewResponses, members[i].ToResponse())
	}

	return &FlightDetailResponse{
		FlightResponse: s.rowToResponse(ctx, row),
		Crew:           crewResponses,
		TakenSeats:     taken,
	}, nil
}

func (s *service) GetAllFlights(ctx context.Context, query FlightListQuery) (*PaginatedFlights, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	responses := make([]FlightResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, s.rowToResponse(ctx, &rows[i]))
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	return &PaginatedFlights{
		Flights:    responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *service) UpdateFlight(ctx context.Context, id uuid.UUID, req UpdateFlightRequest) (*FlightDetailResponse, error) {
	flight, err := s.repo.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	if req.RouteID != nil {
		routeID, err := uuid.Parse(*req.RouteID)
		if err != nil {
			return nil, ErrRouteNotFound
		}
		ok, err := s.repo.RouteExists(ctx, routeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check route: %w", err)
		}
		if !ok {
			return nil, ErrRouteNotFound
		}
		flight.RouteID = routeID
	}
	if req.AirplaneID != nil {
		airplaneID, err := uuid.Parse(*req.AirplaneID)
		if err != nil {
			return nil, ErrAirplaneNotFound
		}
		ok, err := s.repo.AirplaneExists(ctx, airplaneID)
		if err != nil {
			return nil, fmt.Errorf("failed to check airplane: %w", err)
		}
		if !ok {
			return nil, ErrAirplaneNotFound
		}
		sold, err := s.repo.CountTicketsOn(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check sold tickets: %w", err)
		}
		if sold > 0 && airplaneID != flight.AirplaneID {
			return nil, ErrFlightHasTickets
		}
		flight.AirplaneID = airplaneID
	}
	if req.AirlineID != nil {
		airlineID, err := uuid.Parse(*req.AirlineID)
		if err != nil {
			return nil, ErrAirlineNotFound
		}
		ok, err := s.repo.AirlineExists(ctx, airlineID)
		if err != nil {
			return nil, fmt.Errorf("failed to check airline: %w", err)
		}
		if !ok {
			return nil, ErrAirlineNotFound
		}
		flight.AirlineID = airlineID
	}
	if req.DepartureTime != nil {
		flight.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		flight.ArrivalTime = *req.ArrivalTime
	}
	if !flight.ArrivalTime.After(flight.DepartureTime) {
		return nil, ErrInvalidTimes
	}

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("failed to update flight: %w", err)
	}

	if req.CrewIDs != nil {
		members, err := s.resolveCrew(ctx, *req.CrewIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceCrew(ctx, flight, members); err != nil {
			return nil, fmt.Errorf("failed to update flight crew: %w", err)
		}
	}

	return s.GetFlightByID(ctx, flight.ID)
}

// DeleteFlight refuses to remove a flight with sold tickets. Orders
// referencing those tickets must be cancelled first.
func (s *service) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	flight, err := s.repo.GetRaw(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlightNotFound
		}
		return fmt.Errorf("failed to get flight: %w", err)
	}

	sold, err := s.repo.CountTicketsOn(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check sold tickets: %w", err)
	}
	if sold > 0 {
		return ErrFlightHasTickets
	}

	if err := s.repo.Delete(ctx, flight); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}
	return nil
}

func (s *service) checkReferences(ctx context.Context, routeID, airplaneID, airlineID uuid.UUID) error {
	ok, err := s.repo.RouteExists(ctx, routeID)
	if err != nil {
		return fmt.Errorf("failed to check route: %w", err)
	}
	if !ok {
		return ErrRouteNotFound
	}

	ok, err = s.repo.AirplaneExists(ctx, airplaneID)
	if err != nil {
		return fmt.Errorf("failed to check airplane: %w", err)
	}
	if !ok {
		return ErrAirplaneNotFound
	}

	ok, err = s.repo.AirlineExists(ctx, airlineID)
	if err != nil {
		return fmt.Errorf("failed to check airline: %w", err)
	}
	if !ok {
		return ErrAirlineNotFound
	}
	return nil
}

func (s *service) resolveCrew(ctx context.Context, crewIDs []string) ([]crew.Crew, error) {
	if len(crewIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(crewIDs))
	seen := make(map[uuid.UUID]bool, len(crewIDs))
	for _, raw := range crewIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrCrewNotFound
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	members, err := s.repo.GetCrewMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load crew members: %w", err)
	}
	if len(members) != len(ids) {
		return nil, ErrCrewNotFound
	}
	return members, nil
}

// rowToResponse clamps availability at zero; more tickets than seats
// means the data is corrupt, so it is logged loudly.
func (s *service) rowToResponse(ctx context.Context, row *FlightWithDetails) FlightResponse {
	capacity := row.Rows * row.SeatsInRow
	available := capacity - int(row.TicketsSold)
	if available < 0 {
		s.log.LogCapacityAnomaly(ctx, row.ID.String(), capacity, int(row.TicketsSold))
		available = 0
	}

	return FlightResponse{
		ID:      row.ID.String(),
		RouteID: row.RouteID.String(),
		Source: FlightAirport{
			ID:   row.SourceID.String(),
			Name: row.SourceName,
			Code: row.SourceCode,
			City: row.SourceCity,
		},
		Destination: FlightAirport{
			ID:   row.DestinationID.String(),
			Name: row.DestinationName,
			Code: row.DestinationCode,
			City: row.DestinationCity,
		},
		Airline: FlightAirline{
			ID:   row.AirlineID.String(),
			Name: row.AirlineName,
			Code: row.AirlineCode,
		},
		AirplaneID:       row.AirplaneID.String(),
		AirplaneName:     row.AirplaneName,
		Capacity:         capacity,
		TicketsAvailable: available,
		DepartureTime:    row.DepartureTime,
		ArrivalTime:      row.ArrivalTime,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
