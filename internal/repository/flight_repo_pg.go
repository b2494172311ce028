package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, f *domain.Flight, tagNames []string) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]domain.FlightDetails, error)
	Search(ctx context.Context, originCode, destinationCode string, from, to time.Time, limit, offset int) ([]domain.FlightDetails, error)
	ListByAirlineName(ctx context.Context, airlineName string) ([]domain.FlightDetails, error)
	ListWithAllTags(ctx context.Context, tagNames []string) ([]domain.FlightDetails, error)
	Update(ctx context.Context, f *domain.Flight, tagNames []string) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightDetailsSelect = `SELECT f.id, f.number, f.departure_time, f.arrival_time,
	al.id, al.code, al.name,
	o.id, o.code, o.name, o.city,
	d.id, d.code, d.name, d.city
FROM flights f
JOIN airlines al ON al.id = f.airline_id
JOIN airports o ON o.id = f.origin_id
JOIN airports d ON d.id = f.destination_id`

func scanFlightDetails(row pgx.Row) (*domain.FlightDetails, error) {
	var fd domain.FlightDetails
	if err := row.Scan(
		&fd.ID, &fd.Number, &fd.DepartureTime, &fd.ArrivalTime,
		&fd.Airline.ID, &fd.Airline.Code, &fd.Airline.Name,
		&fd.Origin.ID, &fd.Origin.Code, &fd.Origin.Name, &fd.Origin.City,
		&fd.Destination.ID, &fd.Destination.Code, &fd.Destination.Name, &fd.Destination.City,
	); err != nil {
		return nil, err
	}
	fd.AirlineID = fd.Airline.ID
	fd.OriginID = fd.Origin.ID
	fd.DestinationID = fd.Destination.ID
	return &fd, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight, tagNames []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (number, departure_time, arrival_time, airline_id, origin_id, destination_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		f.Number, f.DepartureTime, f.ArrivalTime, f.AirlineID, f.OriginID, f.DestinationID).Scan(&f.ID); err != nil {
		return err
	}

	tags, err := resolveTags(ctx, tx, f.ID, tagNames)
	if err != nil {
		return err
	}
	f.Tags = tags

	return tx.Commit(ctx)
}

// resolveTags performs get-or-create per tag name and links the flight to the
// resolved tags. Two concurrent requests for the same new name are safe: the
// insert is ON CONFLICT DO NOTHING and the follow-up select observes whichever
// row won. Duplicate names in the input collapse to one tag.
func resolveTags(ctx context.Context, tx pgx.Tx, flightID int64, tagNames []string) ([]domain.Tag, error) {
	seen := make(map[string]bool, len(tagNames))
	tags := make([]domain.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		if seen[name] {
			continue
		}
		seen[name] = true

		if _, err := tx.Exec(ctx, `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return nil, err
		}
		var t domain.Tag
		if err := tx.QueryRow(ctx, `SELECT id, name FROM tags WHERE name=$1`, name).Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO flight_tags (flight_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, flightID, t.ID); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, number, departure_time, arrival_time, airline_id, origin_id, destination_id FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Number, &f.DepartureTime, &f.ArrivalTime, &f.AirlineID, &f.OriginID, &f.DestinationID); err != nil {
		return nil, mapScanErr(err)
	}
	tags, err := r.tagsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	f.Tags = tags[id]
	return &f, nil
}

func (r *PGFlightRepository) GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	fd, err := scanFlightDetails(r.db.QueryRow(ctx, flightDetailsSelect+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, mapScanErr(err)
	}
	tags, err := r.tagsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	fd.Tags = tags[id]
	return fd, nil
}

func (r *PGFlightRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.FlightDetails, error) {
	return r.queryDetails(ctx, flightDetailsSelect+` ORDER BY f.departure_time`)
}

func (r *PGFlightRepository) Search(ctx context.Context, originCode, destinationCode string, from, to time.Time, limit, offset int) ([]domain.FlightDetails, error) {
	return r.queryDetails(ctx, flightDetailsSelect+`
		WHERE o.code=$1 AND d.code=$2 AND f.departure_time BETWEEN $3 AND $4
		ORDER BY f.departure_time LIMIT $5 OFFSET $6`,
		originCode, destinationCode, from, to, limit, offset)
}

func (r *PGFlightRepository) ListByAirlineName(ctx context.Context, airlineName string) ([]domain.FlightDetails, error) {
	return r.queryDetails(ctx, flightDetailsSelect+` WHERE al.name=$1 ORDER BY f.departure_time`, airlineName)
}

func (r *PGFlightRepository) ListWithAllTags(ctx context.Context, tagNames []string) ([]domain.FlightDetails, error) {
	return r.queryDetails(ctx, flightDetailsSelect+`
		WHERE f.id IN (
			SELECT ft.flight_id FROM flight_tags ft
			JOIN tags t ON t.id = ft.tag_id
			WHERE t.name = ANY($1)
			GROUP BY ft.flight_id
			HAVING COUNT(DISTINCT t.name) = $2
		)
		ORDER BY f.departure_time`, tagNames, len(tagNames))
}

func (r *PGFlightRepository) queryDetails(ctx context.Context, sql string, args ...any) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightDetails, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		fd, err := scanFlightDetails(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *fd)
		ids = append(ids, fd.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := r.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		flights[i].Tags = tags[flights[i].ID]
	}
	return flights, nil
}

func (r *PGFlightRepository) tagsFor(ctx context.Context, flightIDs []int64) (map[int64][]domain.Tag, error) {
	byFlight := make(map[int64][]domain.Tag)
	if len(flightIDs) == 0 {
		return byFlight, nil
	}

	rows, err := r.db.Query(ctx, `SELECT ft.flight_id, t.id, t.name FROM flight_tags ft
		JOIN tags t ON t.id = ft.tag_id
		WHERE ft.flight_id = ANY($1)
		ORDER BY t.name`, flightIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID int64
		var t domain.Tag
		if err := rows.Scan(&flightID, &t.ID, &t.Name); err != nil {
			return nil, err
		}
		byFlight[flightID] = append(byFlight[flightID], t)
	}
	return byFlight, rows.Err()
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight, tagNames []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET number=$1, departure_time=$2, arrival_time=$3, airline_id=$4, origin_id=$5, destination_id=$6 WHERE id=$7`,
		f.Number, f.DepartureTime, f.ArrivalTime, f.AirlineID, f.OriginID, f.DestinationID, f.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", f.ID, domain.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_tags WHERE flight_id=$1`, f.ID); err != nil {
		return err
	}
	tags, err := resolveTags(ctx, tx, f.ID, tagNames)
	if err != nil {
		return err
	}
	f.Tags = tags

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
