package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetails, error)
	List(ctx context.Context) ([]domain.FlightDetails, error)
	Search(ctx context.Context, originCode, destinationCode string, from, to time.Time, limit, offset int) ([]domain.FlightDetails, error)
	ListByAirlineName(ctx context.Context, airlineName string) ([]domain.FlightDetails, error)
	ListWithAllTags(ctx context.Context, tagNames []string) ([]domain.FlightDetails, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

// FlightCache holds the flight listing with a TTL. Writes invalidate it.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.FlightDetails, error)
	SetFlights(ctx context.Context, flights []domain.FlightDetails) error
	InvalidateFlights(ctx context.Context) error
}

type FlightInput struct {
	Number        string    `json:"number"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	AirlineID     int64     `json:"airline_id"`
	OriginID      int64     `json:"origin_id"`
	DestinationID int64     `json:"destination_id"`
	Tags          []string  `json:"tags"`
}

type FlightService struct {
	flights  repository.FlightRepository
	airlines repository.AirlineRepository
	airports repository.AirportRepository
	cache    FlightCache
	log      *zap.SugaredLogger
}

func NewFlightService(
	flights repository.FlightRepository,
	airlines repository.AirlineRepository,
	airports repository.AirportRepository,
	cache FlightCache,
	log *zap.SugaredLogger,
) *FlightService {
	return &FlightService{flights: flights, airlines: airlines, airports: airports, cache: cache, log: log}
}

// resolveAssociations validates the input and checks that the referenced
// airline and airports exist.
func (s *FlightService) resolveAssociations(ctx context.Context, input FlightInput) error {
	if input.Number == "" {
		return fmt.Errorf("flight number is required: %w", domain.ErrInvalidInput)
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return fmt.Errorf("arrival must be after departure: %w", domain.ErrInvalidInput)
	}
	if input.OriginID == input.DestinationID {
		return fmt.Errorf("origin and destination must differ: %w", domain.ErrInvalidInput)
	}

	if _, err := s.airlines.GetByID(ctx, input.AirlineID); err != nil {
		return fmt.Errorf("airline %d: %w", input.AirlineID, err)
	}
	if _, err := s.airports.GetByID(ctx, input.OriginID); err != nil {
		return fmt.Errorf("origin airport %d: %w", input.OriginID, err)
	}
	if _, err := s.airports.GetByID(ctx, input.DestinationID); err != nil {
		return fmt.Errorf("destination airport %d: %w", input.DestinationID, err)
	}
	return nil
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := s.resolveAssociations(ctx, input); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		Number:        input.Number,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		AirlineID:     input.AirlineID,
		OriginID:      input.OriginID,
		DestinationID: input.DestinationID,
	}
	if err := s.flights.Create(ctx, flight, input.Tags); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Infow("flight created", "flight_id", flight.ID, "number", flight.Number)
	return flight, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	fd, err := s.flights.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("flight %d: %w", id, err)
	}
	return fd, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.FlightDetails, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, originCode, destinationCode string, from, to time.Time, limit, offset int) ([]domain.FlightDetails, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.flights.Search(ctx, originCode, destinationCode, from, to, limit, offset)
}

func (s *FlightService) ListByAirlineName(ctx context.Context, airlineName string) ([]domain.FlightDetails, error) {
	return s.flights.ListByAirlineName(ctx, airlineName)
}

func (s *FlightService) ListWithAllTags(ctx context.Context, tagNames []string) ([]domain.FlightDetails, error) {
	if len(tagNames) == 0 {
		return []domain.FlightDetails{}, nil
	}
	return s.flights.ListWithAllTags(ctx, tagNames)
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := s.resolveAssociations(ctx, input); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		ID:            id,
		Number:        input.Number,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		AirlineID:     input.AirlineID,
		OriginID:      input.OriginID,
		DestinationID: input.DestinationID,
	}
	if err := s.flights.Update(ctx, flight, input.Tags); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warnw("failed to invalidate flights cache", "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
