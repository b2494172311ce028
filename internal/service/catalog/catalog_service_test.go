package catalog

import (
	"context"
	"testing"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAirlineRepository struct {
	mock.Mock
}

func (m *MockAirlineRepository) Create(ctx context.Context, a *domain.Airline) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirlineRepository) GetByID(ctx context.Context, id int64) (*domain.Airline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) GetByCode(ctx context.Context, code string) (*domain.Airline, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockAirlineRepository) Update(ctx context.Context, a *domain.Airline) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirlineRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAirlineService_Create(t *testing.T) {
	repo := &MockAirlineRepository{}
	service := NewAirlineService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Airline")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Airline).ID = 5
		}).Return(nil).Once()

	a, err := service.Create(ctx, AirlineInput{Code: "BA", Name: "British Airways"})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), a.ID)
}

func TestAirlineService_Create_MissingFields(t *testing.T) {
	repo := &MockAirlineRepository{}
	service := NewAirlineService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, AirlineInput{Code: "BA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Create(ctx, AirlineInput{Name: "British Airways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAirlineService_Create_DuplicateCode(t *testing.T) {
	repo := &MockAirlineRepository{}
	service := NewAirlineService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Airline")).Return(domain.ErrConflict).Once()

	_, err := service.Create(ctx, AirlineInput{Code: "BA", Name: "British Airways"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAirlineService_GetByCode_NotFound(t *testing.T) {
	repo := &MockAirlineRepository{}
	service := NewAirlineService(repo)
	ctx := context.Background()

	repo.On("GetByCode", ctx, "ZZ").Return(nil, domain.ErrNotFound).Once()

	_, err := service.GetByCode(ctx, "ZZ")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAirportService_Create(t *testing.T) {
	repo := &MockAirportRepository{}
	service := NewAirportService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Airport")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Airport).ID = 3
		}).Return(nil).Once()

	a, err := service.Create(ctx, AirportInput{Code: "LHR", Name: "Heathrow", City: "London"})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
}

func TestAirportService_Create_MissingCode(t *testing.T) {
	repo := &MockAirportRepository{}
	service := NewAirportService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, AirportInput{Name: "Heathrow", City: "London"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAirportService_Update_NotFound(t *testing.T) {
	repo := &MockAirportRepository{}
	service := NewAirportService(repo)
	ctx := context.Background()

	repo.On("Update", ctx, mock.AnythingOfType("*domain.Airport")).Return(domain.ErrNotFound).Once()

	_, err := service.Update(ctx, 404, AirportInput{Code: "LHR", Name: "Heathrow", City: "London"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
