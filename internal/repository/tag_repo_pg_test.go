package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewTagRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewTagRepository(pool)
	assert.NotNil(t, repo)
}
