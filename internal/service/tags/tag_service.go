package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
)

type TagUseCase interface {
	Create(ctx context.Context, input TagInput) (*domain.Tag, error)
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, id int64, input TagInput) (*domain.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type TagInput struct {
	Name string `json:"name"`
}

type TagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) Create(ctx context.Context, input TagInput) (*domain.Tag, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}

	if _, err := s.tags.GetByName(ctx, input.Name); err == nil {
		return nil, fmt.Errorf("tag %s: %w", input.Name, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	t := &domain.Tag{Name: input.Name}
	if err := s.tags.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tag %d: %w", id, err)
	}
	return t, nil
}

func (s *TagService) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	t, err := s.tags.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("tag %s: %w", name, err)
	}
	return t, nil
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// Update renames the tag. Flights referencing it keep the association and
// surface the new name.
func (s *TagService) Update(ctx context.Context, id int64, input TagInput) (*domain.Tag, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}

	if _, err := s.tags.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("tag %d: %w", id, err)
	}

	t := &domain.Tag{ID: id, Name: input.Name}
	if err := s.tags.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.tags.Delete(ctx, id)
}

var _ TagUseCase = (*TagService)(nil)
