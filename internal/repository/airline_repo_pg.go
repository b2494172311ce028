package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirlineRepository interface {
	Create(ctx context.Context, a *domain.Airline) error
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	GetByCode(ctx context.Context, code string) (*domain.Airline, error)
	List(ctx context.Context) ([]domain.Airline, error)
	Update(ctx context.Context, a *domain.Airline) error
	Delete(ctx context.Context, id int64) error
}

type PGAirlineRepository struct {
	db *pgxpool.Pool
}

func NewAirlineRepository(db *pgxpool.Pool) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) Create(ctx context.Context, a *domain.Airline) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airlines (code, name) VALUES ($1, $2) RETURNING id`, a.Code, a.Name).Scan(&a.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("airline with code %s: %w", a.Code, domain.ErrConflict)
	}
	return err
}

func (r *PGAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, name FROM airlines WHERE id=$1`, id)
	var a domain.Airline
	if err := row.Scan(&a.ID, &a.Code, &a.Name); err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

func (r *PGAirlineRepository) GetByCode(ctx context.Context, code string) (*domain.Airline, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, name FROM airlines WHERE code=$1`, code)
	var a domain.Airline
	if err := row.Scan(&a.ID, &a.Code, &a.Name); err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM airlines ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Code, &a.Name); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) Update(ctx context.Context, a *domain.Airline) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airlines SET code=$1, name=$2 WHERE id=$3`, a.Code, a.Name, a.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("airline with code %s: %w", a.Code, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airline %d: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirlineRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airlines WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("airline %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
