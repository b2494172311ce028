package catalog

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
)

type AirlineUseCase interface {
	Create(ctx context.Context, input AirlineInput) (*domain.Airline, error)
	GetByID(ctx context.Context, id int64) (*domain.Airline, error)
	GetByCode(ctx context.Context, code string) (*domain.Airline, error)
	List(ctx context.Context) ([]domain.Airline, error)
	Update(ctx context.Context, id int64, input AirlineInput) (*domain.Airline, error)
	Delete(ctx context.Context, id int64) error
}

type AirlineInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type AirlineService struct {
	airlines repository.AirlineRepository
}

func NewAirlineService(airlines repository.AirlineRepository) *AirlineService {
	return &AirlineService{airlines: airlines}
}

func (s *AirlineService) Create(ctx context.Context, input AirlineInput) (*domain.Airline, error) {
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("code and name are required: %w", domain.ErrInvalidInput)
	}

	airline := &domain.Airline{Code: input.Code, Name: input.Name}
	if err := s.airlines.Create(ctx, airline); err != nil {
		return nil, err
	}
	return airline, nil
}

func (s *AirlineService) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	a, err := s.airlines.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("airline %d: %w", id, err)
	}
	return a, nil
}

func (s *AirlineService) GetByCode(ctx context.Context, code string) (*domain.Airline, error) {
	a, err := s.airlines.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("airline %s: %w", code, err)
	}
	return a, nil
}

func (s *AirlineService) List(ctx context.Context) ([]domain.Airline, error) {
	return s.airlines.List(ctx)
}

func (s *AirlineService) Update(ctx context.Context, id int64, input AirlineInput) (*domain.Airline, error) {
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("code and name are required: %w", domain.ErrInvalidInput)
	}

	airline := &domain.Airline{ID: id, Code: input.Code, Name: input.Name}
	if err := s.airlines.Update(ctx, airline); err != nil {
		return nil, err
	}
	return airline, nil
}

func (s *AirlineService) Delete(ctx context.Context, id int64) error {
	return s.airlines.Delete(ctx, id)
}

var _ AirlineUseCase = (*AirlineService)(nil)
