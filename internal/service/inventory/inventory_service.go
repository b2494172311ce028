package inventory

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
	"go.uber.org/zap"
)

// InventoryUseCase is the seat availability ledger for (flight, cabin)
// pairs. All counter mutations go through the repository's conditional
// updates, so 0 <= available <= total holds under concurrency.
type InventoryUseCase interface {
	Create(ctx context.Context, input CreateInventoryInput) (*domain.SeatInventory, error)
	GetByID(ctx context.Context, id int64) (*domain.SeatInventory, error)
	GetByFlightAndCabin(ctx context.Context, flightID int64, cabin string) (*domain.SeatInventory, error)
	List(ctx context.Context) ([]domain.SeatInventory, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.SeatInventory, error)
	HasAvailableSeats(ctx context.Context, flightID int64, cabin string, minimum int) (bool, error)
	Decrease(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error)
	Increase(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error)
	Update(ctx context.Context, id int64, input CreateInventoryInput) (*domain.SeatInventory, error)
	Delete(ctx context.Context, id int64) error
}

type CreateInventoryInput struct {
	FlightID   int64  `json:"flight_id"`
	Cabin      string `json:"cabin"`
	TotalSeats int    `json:"total_seats"`
}

type InventoryService struct {
	inventories repository.InventoryRepository
	flights     repository.FlightRepository
	log         *zap.SugaredLogger
}

func NewInventoryService(inventories repository.InventoryRepository, flights repository.FlightRepository, log *zap.SugaredLogger) *InventoryService {
	return &InventoryService{inventories: inventories, flights: flights, log: log}
}

func (s *InventoryService) validate(input CreateInventoryInput) error {
	if input.Cabin == "" {
		return fmt.Errorf("cabin is required: %w", domain.ErrInvalidInput)
	}
	if input.TotalSeats <= 0 {
		return fmt.Errorf("total seats must be positive: %w", domain.ErrInvalidInput)
	}
	return nil
}

func (s *InventoryService) Create(ctx context.Context, input CreateInventoryInput) (*domain.SeatInventory, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	exists, err := s.flights.ExistsByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("flight %d: %w", input.FlightID, domain.ErrNotFound)
	}

	if _, err := s.inventories.GetByFlightAndCabin(ctx, input.FlightID, input.Cabin); err == nil {
		return nil, fmt.Errorf("inventory for flight %d cabin %s: %w", input.FlightID, input.Cabin, domain.ErrConflict)
	}

	inv := &domain.SeatInventory{
		FlightID:   input.FlightID,
		Cabin:      input.Cabin,
		TotalSeats: input.TotalSeats,
	}
	if err := s.inventories.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.log.Infow("seat inventory created", "flight_id", inv.FlightID, "cabin", inv.Cabin, "total_seats", inv.TotalSeats)
	return inv, nil
}

func (s *InventoryService) GetByID(ctx context.Context, id int64) (*domain.SeatInventory, error) {
	inv, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inventory %d: %w", id, err)
	}
	return inv, nil
}

func (s *InventoryService) GetByFlightAndCabin(ctx context.Context, flightID int64, cabin string) (*domain.SeatInventory, error) {
	inv, err := s.inventories.GetByFlightAndCabin(ctx, flightID, cabin)
	if err != nil {
		return nil, fmt.Errorf("inventory for flight %d cabin %s: %w", flightID, cabin, err)
	}
	return inv, nil
}

func (s *InventoryService) List(ctx context.Context) ([]domain.SeatInventory, error) {
	return s.inventories.List(ctx)
}

func (s *InventoryService) ListByFlight(ctx context.Context, flightID int64) ([]domain.SeatInventory, error) {
	return s.inventories.ListByFlight(ctx, flightID)
}

// HasAvailableSeats never errors on a missing row: callers must not assume
// an inventory row exists for every (flight, cabin) pair.
func (s *InventoryService) HasAvailableSeats(ctx context.Context, flightID int64, cabin string, minimum int) (bool, error) {
	return s.inventories.HasAvailableSeats(ctx, flightID, cabin, minimum)
}

func (s *InventoryService) Decrease(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	return s.inventories.Decrease(ctx, flightID, cabin, quantity)
}

func (s *InventoryService) Increase(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidInput)
	}
	return s.inventories.Increase(ctx, flightID, cabin, quantity)
}

// Update replaces flight, cabin and total, and resets available seats to
// the new total. Consumption by outstanding bookings is discarded, not
// reconciled.
func (s *InventoryService) Update(ctx context.Context, id int64, input CreateInventoryInput) (*domain.SeatInventory, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	if _, err := s.inventories.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("inventory %d: %w", id, err)
	}
	exists, err := s.flights.ExistsByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("flight %d: %w", input.FlightID, domain.ErrNotFound)
	}

	inv := &domain.SeatInventory{
		ID:             id,
		FlightID:       input.FlightID,
		Cabin:          input.Cabin,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
	}
	if err := s.inventories.Update(ctx, inv); err != nil {
		return nil, err
	}
	s.log.Infow("seat inventory reset", "inventory_id", id, "flight_id", inv.FlightID, "cabin", inv.Cabin, "total_seats", inv.TotalSeats)
	return inv, nil
}

// Delete removes the row even when live bookings still reference it. The
// cancellation path tolerates the missing row.
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return s.inventories.Delete(ctx, id)
}

var _ InventoryUseCase = (*InventoryService)(nil)
