package passengers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
)

type PassengerUseCase interface {
	Create(ctx context.Context, input PassengerInput) (*domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	Update(ctx context.Context, id int64, input PassengerInput) (*domain.Passenger, error)
	Delete(ctx context.Context, id int64) error
}

type PassengerInput struct {
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	Profile  *ProfileInput `json:"profile,omitempty"`
}

type ProfileInput struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

type PassengerService struct {
	passengers repository.PassengerRepository
}

func NewPassengerService(passengers repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengers: passengers}
}

func (s *PassengerService) Create(ctx context.Context, input PassengerInput) (*domain.Passenger, error) {
	if input.FullName == "" || input.Email == "" {
		return nil, fmt.Errorf("full name and email are required: %w", domain.ErrInvalidInput)
	}

	p := &domain.Passenger{FullName: input.FullName, Email: input.Email}
	if input.Profile != nil {
		p.Profile = &domain.PassengerProfile{Phone: input.Profile.Phone, CountryCode: input.Profile.CountryCode}
	}
	if err := s.passengers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	p, err := s.passengers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("passenger %d: %w", id, err)
	}
	return p, nil
}

// GetByEmail matches case-insensitively and includes the profile.
func (s *PassengerService) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	p, err := s.passengers.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("passenger %s: %w", email, err)
	}
	return p, nil
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	return s.passengers.List(ctx)
}

func (s *PassengerService) Update(ctx context.Context, id int64, input PassengerInput) (*domain.Passenger, error) {
	if input.FullName == "" || input.Email == "" {
		return nil, fmt.Errorf("full name and email are required: %w", domain.ErrInvalidInput)
	}

	// The new email must not belong to a different passenger.
	existing, err := s.passengers.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, fmt.Errorf("email %s is already in use: %w", input.Email, domain.ErrConflict)
	}

	p := &domain.Passenger{ID: id, FullName: input.FullName, Email: input.Email}
	if input.Profile != nil {
		p.Profile = &domain.PassengerProfile{Phone: input.Profile.Phone, CountryCode: input.Profile.CountryCode}
	}
	if err := s.passengers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PassengerService) Delete(ctx context.Context, id int64) error {
	return s.passengers.Delete(ctx, id)
}

var _ PassengerUseCase = (*PassengerService)(nil)
