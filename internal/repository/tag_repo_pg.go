package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepository interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id int64) error
}

type PGTagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) TagRepository {
	return &PGTagRepository{db: db}
}

func (r *PGTagRepository) Create(ctx context.Context, t *domain.Tag) error {
	err := r.db.QueryRow(ctx, `INSERT INTO tags (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("tag %s: %w", t.Name, domain.ErrConflict)
	}
	return err
}

func (r *PGTagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(ctx, `SELECT id, name FROM tags WHERE id=$1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &t, nil
}

func (r *PGTagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(ctx, `SELECT id, name FROM tags WHERE name=$1`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, mapScanErr(err)
	}
	return &t, nil
}

func (r *PGTagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *PGTagRepository) Update(ctx context.Context, t *domain.Tag) error {
	cmd, err := r.db.Exec(ctx, `UPDATE tags SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("tag %s: %w", t.Name, domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("tag %d: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGTagRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("tag %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ TagRepository = (*PGTagRepository)(nil)
