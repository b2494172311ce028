package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	Create(ctx context.Context, a *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	GetByCode(ctx context.Context, code string) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
	Update(ctx context.Context, a *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (code, name, city) VALUES ($1, $2, $3) RETURNING id`, a.Code, a.Name, a.City).Scan(&a.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("airport with code %s: %w", a.Code, domain.ErrConflict)
	}
	return err
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, name, city FROM airports WHERE id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Code, &a.Name, &a.City); err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, name, city FROM airports WHERE code=$1`, code)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Code, &a.Name, &a.City); err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, city FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.City); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airports SET code=$1, name=$2, city=$3 WHERE id=$4`, a.Code, a.Name, a.City, a.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("airport with code %s: %w", a.Code, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airport %d: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airport %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
