package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepository interface {
	Create(ctx context.Context, inv *domain.SeatInventory) error
	GetByID(ctx context.Context, id int64) (*domain.SeatInventory, error)
	GetByFlightAndCabin(ctx context.Context, flightID int64, cabin string) (*domain.SeatInventory, error)
	List(ctx context.Context) ([]domain.SeatInventory, error)
	ListByFlight(ctx context.Context, flightID int64) ([]domain.SeatInventory, error)
	HasAvailableSeats(ctx context.Context, flightID int64, cabin string, minimum int) (bool, error)
	Decrease(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error)
	Increase(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error)
	Update(ctx context.Context, inv *domain.SeatInventory) error
	Delete(ctx context.Context, id int64) error
}

type PGInventoryRepository struct {
	db *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) InventoryRepository {
	return &PGInventoryRepository{db: db}
}

const inventorySelect = `SELECT id, flight_id, cabin, total_seats, available_seats FROM seat_inventories`

func scanInventory(row pgx.Row) (*domain.SeatInventory, error) {
	var inv domain.SeatInventory
	if err := row.Scan(&inv.ID, &inv.FlightID, &inv.Cabin, &inv.TotalSeats, &inv.AvailableSeats); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PGInventoryRepository) Create(ctx context.Context, inv *domain.SeatInventory) error {
	inv.AvailableSeats = inv.TotalSeats
	err := r.db.QueryRow(ctx, `INSERT INTO seat_inventories (flight_id, cabin, total_seats, available_seats)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		inv.FlightID, inv.Cabin, inv.TotalSeats, inv.AvailableSeats).Scan(&inv.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("inventory for flight %d cabin %s: %w", inv.FlightID, inv.Cabin, domain.ErrConflict)
	}
	return err
}

func (r *PGInventoryRepository) GetByID(ctx context.Context, id int64) (*domain.SeatInventory, error) {
	inv, err := scanInventory(r.db.QueryRow(ctx, inventorySelect+` WHERE id=$1`, id))
	if err != nil {
		return nil, mapScanErr(err)
	}
	return inv, nil
}

func (r *PGInventoryRepository) GetByFlightAndCabin(ctx context.Context, flightID int64, cabin string) (*domain.SeatInventory, error) {
	inv, err := scanInventory(r.db.QueryRow(ctx, inventorySelect+` WHERE flight_id=$1 AND cabin=$2`, flightID, cabin))
	if err != nil {
		return nil, mapScanErr(err)
	}
	return inv, nil
}

func (r *PGInventoryRepository) List(ctx context.Context) ([]domain.SeatInventory, error) {
	rows, err := r.db.Query(ctx, inventorySelect+` ORDER BY flight_id, cabin`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventories(rows)
}

func (r *PGInventoryRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.SeatInventory, error) {
	rows, err := r.db.Query(ctx, inventorySelect+` WHERE flight_id=$1 ORDER BY cabin`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInventories(rows)
}

func collectInventories(rows pgx.Rows) ([]domain.SeatInventory, error) {
	inventories := make([]domain.SeatInventory, 0)
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, *inv)
	}
	return inventories, rows.Err()
}

// HasAvailableSeats is a pure read. A missing row reports false, not an error.
func (r *PGInventoryRepository) HasAvailableSeats(ctx context.Context, flightID int64, cabin string, minimum int) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT available_seats >= $3 FROM seat_inventories WHERE flight_id=$1 AND cabin=$2`,
		flightID, cabin, minimum).Scan(&ok)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Decrease applies a single conditional UPDATE so concurrent bookings cannot
// drive availability below zero. Zero rows affected means either a missing
// row or insufficient seats; adjust tells the two apart with an EXISTS probe
// inside the same transaction.
func (r *PGInventoryRepository) Decrease(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	return r.adjust(ctx, flightID, cabin, quantity, `UPDATE seat_inventories
		SET available_seats = available_seats - $3
		WHERE flight_id=$1 AND cabin=$2 AND available_seats >= $3
		RETURNING id, flight_id, cabin, total_seats, available_seats`, domain.ErrInsufficientSeats)
}

// Increase mirrors Decrease with the capacity bound: availability never
// grows past total_seats.
func (r *PGInventoryRepository) Increase(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	return r.adjust(ctx, flightID, cabin, quantity, `UPDATE seat_inventories
		SET available_seats = available_seats + $3
		WHERE flight_id=$1 AND cabin=$2 AND available_seats + $3 <= total_seats
		RETURNING id, flight_id, cabin, total_seats, available_seats`, domain.ErrCapacityExceeded)
}

func (r *PGInventoryRepository) adjust(ctx context.Context, flightID int64, cabin string, quantity int, query string, boundErr error) (*domain.SeatInventory, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inv, err := scanInventory(tx.QueryRow(ctx, query, flightID, cabin, quantity))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seat_inventories WHERE flight_id=$1 AND cabin=$2)`,
			flightID, cabin).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("inventory for flight %d cabin %s: %w", flightID, cabin, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("flight %d cabin %s: %w", flightID, cabin, boundErr)
	}
	if err != nil {
		return nil, err
	}
	return inv, tx.Commit(ctx)
}

// Update is a destructive full reset: available_seats becomes the new total
// and prior consumption is discarded.
func (r *PGInventoryRepository) Update(ctx context.Context, inv *domain.SeatInventory) error {
	inv.AvailableSeats = inv.TotalSeats
	cmd, err := r.db.Exec(ctx, `UPDATE seat_inventories SET flight_id=$1, cabin=$2, total_seats=$3, available_seats=$3 WHERE id=$4`,
		inv.FlightID, inv.Cabin, inv.TotalSeats, inv.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("inventory for flight %d cabin %s: %w", inv.FlightID, inv.Cabin, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("inventory %d: %w", inv.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGInventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM seat_inventories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("inventory %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ InventoryRepository = (*PGInventoryRepository)(nil)
