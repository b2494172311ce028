package catalog

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
)

type AirportUseCase interface {
	Create(ctx context.Context, input AirportInput) (*domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	GetByCode(ctx context.Context, code string) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
	Update(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error)
	Delete(ctx context.Context, id int64) error
}

type AirportInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

type AirportService struct {
	airports repository.AirportRepository
}

func NewAirportService(airports repository.AirportRepository) *AirportService {
	return &AirportService{airports: airports}
}

func (s *AirportService) Create(ctx context.Context, input AirportInput) (*domain.Airport, error) {
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("code and name are required: %w", domain.ErrInvalidInput)
	}

	airport := &domain.Airport{Code: input.Code, Name: input.Name, City: input.City}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	a, err := s.airports.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("airport %d: %w", id, err)
	}
	return a, nil
}

func (s *AirportService) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	a, err := s.airports.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("airport %s: %w", code, err)
	}
	return a, nil
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	return s.airports.List(ctx)
}

func (s *AirportService) Update(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error) {
	if input.Code == "" || input.Name == "" {
		return nil, fmt.Errorf("code and name are required: %w", domain.ErrInvalidInput)
	}

	airport := &domain.Airport{ID: id, Code: input.Code, Name: input.Name, City: input.City}
	if err := s.airports.Update(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *AirportService) Delete(ctx context.Context, id int64) error {
	return s.airports.Delete(ctx, id)
}

var _ AirportUseCase = (*AirportService)(nil)
