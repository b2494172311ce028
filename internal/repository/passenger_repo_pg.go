package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Create(ctx context.Context, p *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	Update(ctx context.Context, p *domain.Passenger) error
	Delete(ctx context.Context, id int64) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerSelect = `SELECT p.id, p.full_name, p.email, pp.id, pp.phone, pp.country_code
FROM passengers p
LEFT JOIN passenger_profiles pp ON pp.passenger_id = p.id`

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	var profileID sql.NullInt64
	var phone, countryCode sql.NullString
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &profileID, &phone, &countryCode); err != nil {
		return nil, err
	}
	if profileID.Valid {
		p.Profile = &domain.PassengerProfile{ID: profileID.Int64, Phone: phone.String, CountryCode: countryCode.String}
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO passengers (full_name, email) VALUES ($1, $2) RETURNING id`, p.FullName, p.Email).Scan(&p.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("passenger with email %s: %w", p.Email, domain.ErrConflict)
	}
	if err != nil {
		return err
	}

	if p.Profile != nil {
		if err := tx.QueryRow(ctx, `INSERT INTO passenger_profiles (passenger_id, phone, country_code) VALUES ($1, $2, $3) RETURNING id`,
			p.ID, p.Profile.Phone, p.Profile.CountryCode).Scan(&p.Profile.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx, passengerSelect+` WHERE p.id=$1`, id))
	if err != nil {
		return nil, mapScanErr(err)
	}
	return p, nil
}

// GetByEmail resolves the passenger by case-insensitive email and includes
// the profile when present.
func (r *PGPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	p, err := scanPassenger(r.db.QueryRow(ctx, passengerSelect+` WHERE LOWER(p.email)=LOWER($1)`, email))
	if err != nil {
		return nil, mapScanErr(err)
	}
	return p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, passengerSelect+` ORDER BY p.full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, *p)
	}
	return passengers, rows.Err()
}

func (r *PGPassengerRepository) Update(ctx context.Context, p *domain.Passenger) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE passengers SET full_name=$1, email=$2 WHERE id=$3`, p.FullName, p.Email, p.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("passenger with email %s: %w", p.Email, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("passenger %d: %w", p.ID, domain.ErrNotFound)
	}

	if p.Profile != nil {
		if err := tx.QueryRow(ctx, `INSERT INTO passenger_profiles (passenger_id, phone, country_code) VALUES ($1, $2, $3)
			ON CONFLICT (passenger_id) DO UPDATE SET phone=EXCLUDED.phone, country_code=EXCLUDED.country_code
			RETURNING id`, p.ID, p.Profile.Phone, p.Profile.CountryCode).Scan(&p.Profile.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("passenger %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
