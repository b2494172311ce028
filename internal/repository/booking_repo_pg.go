package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking, items []domain.BookingItem) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error)
	GetDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error)
	ListItems(ctx context.Context, bookingID int64) ([]domain.BookingItem, error)
	Total(ctx context.Context, bookingID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create persists the booking shell, its items, and the per-item seat
// decrements inside one transaction. Any failure rolls the whole booking
// back: no partial rows, no lost seats. The decrement is conditional on
// availability, which closes the window between the caller's pre-check and
// the write.
func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking, items []domain.BookingItem) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, passenger_id) VALUES ($1, $2) RETURNING id, created_at`,
		b.Reference, b.PassengerID).Scan(&b.ID, &b.CreatedAt); err != nil {
		return err
	}

	for i := range items {
		item := &items[i]
		item.BookingID = b.ID

		cmd, err := tx.Exec(ctx, `UPDATE seat_inventories
			SET available_seats = available_seats - 1
			WHERE flight_id=$1 AND cabin=$2 AND available_seats >= 1`,
			item.FlightID, item.Cabin)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seat_inventories WHERE flight_id=$1 AND cabin=$2)`,
				item.FlightID, item.Cabin).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("inventory for flight %d cabin %s: %w", item.FlightID, item.Cabin, domain.ErrNotFound)
			}
			return fmt.Errorf("flight %d cabin %s: %w", item.FlightID, item.Cabin, domain.ErrInsufficientSeats)
		}

		if err := tx.QueryRow(ctx, `INSERT INTO booking_items (booking_id, flight_id, cabin, price_cents, segment_order)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			item.BookingID, item.FlightID, item.Cabin, item.PriceCents, item.SegmentOrder).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, passenger_id, created_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.PassengerID, &b.CreatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	return &b, nil
}

func (r *PGBookingRepository) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	return r.getDetails(ctx, `b.id=$1`, id)
}

func (r *PGBookingRepository) GetDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	return r.getDetails(ctx, `b.reference=$1`, reference)
}

func (r *PGBookingRepository) getDetails(ctx context.Context, where string, arg any) (*domain.BookingDetails, error) {
	row := r.db.QueryRow(ctx, `SELECT b.id, b.reference, b.passenger_id, b.created_at, p.full_name, p.email
		FROM bookings b JOIN passengers p ON p.id = b.passenger_id WHERE `+where, arg)

	var bd domain.BookingDetails
	if err := row.Scan(&bd.ID, &bd.Reference, &bd.PassengerID, &bd.CreatedAt, &bd.Passenger.FullName, &bd.Passenger.Email); err != nil {
		return nil, mapScanErr(err)
	}
	bd.Passenger.ID = bd.PassengerID

	rows, err := r.db.Query(ctx, `SELECT bi.id, bi.booking_id, bi.cabin, bi.price_cents, bi.segment_order,
			f.id, f.number, f.departure_time, f.arrival_time,
			al.id, al.code, al.name,
			o.id, o.code, o.name, o.city,
			d.id, d.code, d.name, d.city
		FROM booking_items bi
		JOIN flights f ON f.id = bi.flight_id
		JOIN airlines al ON al.id = f.airline_id
		JOIN airports o ON o.id = f.origin_id
		JOIN airports d ON d.id = f.destination_id
		WHERE bi.booking_id=$1
		ORDER BY bi.segment_order`, bd.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bd.Items = make([]domain.BookingItemDetails, 0)
	for rows.Next() {
		var it domain.BookingItemDetails
		if err := rows.Scan(&it.ID, &it.BookingID, &it.Cabin, &it.PriceCents, &it.SegmentOrder,
			&it.Flight.ID, &it.Flight.Number, &it.Flight.DepartureTime, &it.Flight.ArrivalTime,
			&it.Flight.Airline.ID, &it.Flight.Airline.Code, &it.Flight.Airline.Name,
			&it.Flight.Origin.ID, &it.Flight.Origin.Code, &it.Flight.Origin.Name, &it.Flight.Origin.City,
			&it.Flight.Destination.ID, &it.Flight.Destination.Code, &it.Flight.Destination.Name, &it.Flight.Destination.City,
		); err != nil {
			return nil, err
		}
		it.FlightID = it.Flight.ID
		it.Flight.AirlineID = it.Flight.Airline.ID
		it.Flight.OriginID = it.Flight.Origin.ID
		it.Flight.DestinationID = it.Flight.Destination.ID
		bd.Items = append(bd.Items, it)
	}
	return &bd, rows.Err()
}

func (r *PGBookingRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGBookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, passenger_id, created_at
		FROM bookings ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.PassengerID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT b.id, b.reference, b.passenger_id, b.created_at
		FROM bookings b JOIN passengers p ON p.id = b.passenger_id
		WHERE LOWER(p.email)=LOWER($1)
		ORDER BY b.created_at DESC LIMIT $2 OFFSET $3`, email, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.PassengerID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) ListItems(ctx context.Context, bookingID int64) ([]domain.BookingItem, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, flight_id, cabin, price_cents, segment_order
		FROM booking_items WHERE booking_id=$1 ORDER BY segment_order`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.BookingItem, 0)
	for rows.Next() {
		var it domain.BookingItem
		if err := rows.Scan(&it.ID, &it.BookingID, &it.FlightID, &it.Cabin, &it.PriceCents, &it.SegmentOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Total sums item prices with an aggregate query. A booking without items
// totals zero.
func (r *PGBookingRepository) Total(ctx context.Context, bookingID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(price_cents), 0) FROM booking_items WHERE booking_id=$1`, bookingID).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return total, err
}

// Delete removes the booking; booking_items cascade at the schema level.
func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
