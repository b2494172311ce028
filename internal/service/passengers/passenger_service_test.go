package passengers

import (
	"context"
	"testing"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) Update(ctx context.Context, p *domain.Passenger) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPassengerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestPassengerService_Create_WithProfile(t *testing.T) {
	repo := &MockPassengerRepository{}
	service := NewPassengerService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Passenger).ID = 7
		}).Return(nil).Once()

	p, err := service.Create(ctx, PassengerInput{
		FullName: "Ada Lovelace",
		Email:    "ada@x.com",
		Profile:  &ProfileInput{Phone: "+44 20 1234", CountryCode: "GB"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.NotNil(t, p.Profile)
	assert.Equal(t, "GB", p.Profile.CountryCode)
}

func TestPassengerService_Create_MissingFields(t *testing.T) {
	repo := &MockPassengerRepository{}
	service := NewPassengerService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, PassengerInput{Email: "ada@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Create(ctx, PassengerInput{FullName: "Ada Lovelace"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPassengerService_Update_EmailTakenByOther(t *testing.T) {
	repo := &MockPassengerRepository{}
	service := NewPassengerService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "taken@x.com").Return(&domain.Passenger{ID: 2, Email: "taken@x.com"}, nil).Once()

	_, err := service.Update(ctx, 1, PassengerInput{FullName: "Ada Lovelace", Email: "taken@x.com"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPassengerService_Update_KeepOwnEmail(t *testing.T) {
	repo := &MockPassengerRepository{}
	service := NewPassengerService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ada@x.com").Return(&domain.Passenger{ID: 1, Email: "ada@x.com"}, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	p, err := service.Update(ctx, 1, PassengerInput{FullName: "Ada Lovelace", Email: "ada@x.com"})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	repo.AssertExpectations(t)
}

func TestPassengerService_Update_NewEmail(t *testing.T) {
	repo := &MockPassengerRepository{}
	service := NewPassengerService(repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "new@x.com").Return(nil, domain.ErrNotFound).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	_, err := service.Update(ctx, 1, PassengerInput{FullName: "Ada Lovelace", Email: "new@x.com"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
