package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/service/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking, items []domain.BookingItem) error {
	args := m.Called(ctx, b, items)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) GetDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, email, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListItems(ctx context.Context, bookingID int64) ([]domain.BookingItem, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.BookingItem), args.Error(1)
}

func (m *MockBookingRepository) Total(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, f *domain.Flight, tagNames []string) error {
	args := m.Called(ctx, f, tagNames)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.FlightDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, originCode, destinationCode string, from, to time.Time, limit, offset int) ([]domain.FlightDetails, error) {
	args := m.Called(ctx, originCode, destinationCode, from, to, limit, offset)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) ListByAirlineName(ctx context.Context, airlineName string) ([]domain.FlightDetails, error) {
	args := m.Called(ctx, airlineName)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) ListWithAllTags(ctx context.Context, tagNames []string) ([]domain.FlightDetails, error) {
	args := m.Called(ctx, tagNames)
	return args.Get(0).([]domain.FlightDetails), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, f *domain.Flight, tagNames []string) error {
	args := m.Called(ctx, f, tagNames)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type MockInventoryUseCase struct {
	mock.Mock
}

func (m *MockInventoryUseCase) Create(ctx context.Context, input inventory.CreateInventoryInput) (*domain.SeatInventory, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) GetByID(ctx context.Context, id int64) (*domain.SeatInventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) GetByFlightAndCabin(ctx context.Context, flightID int64, cabin string) (*domain.SeatInventory, error) {
	args := m.Called(ctx, flightID, cabin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) List(ctx context.Context) ([]domain.SeatInventory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) ListByFlight(ctx context.Context, flightID int64) ([]domain.SeatInventory, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) HasAvailableSeats(ctx context.Context, flightID int64, cabin string, minimum int) (bool, error) {
	args := m.Called(ctx, flightID, cabin, minimum)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryUseCase) Decrease(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	args := m.Called(ctx, flightID, cabin, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) Increase(ctx context.Context, flightID int64, cabin string, quantity int) (*domain.SeatInventory, error) {
	args := m.Called(ctx, flightID, cabin, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) Update(ctx context.Context, id int64, input inventory.CreateInventoryInput) (*domain.SeatInventory, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatInventory), args.Error(1)
}

func (m *MockInventoryUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService() (*BookingService, *MockBookingRepository, *MockFlightRepository, *MockPassengerRepository, *MockInventoryUseCase, *MockProducer) {
	bookings := &MockBookingRepository{}
	flights := &MockFlightRepository{}
	passengers := &MockPassengerRepository{}
	inventories := &MockInventoryUseCase{}
	producer := &MockProducer{}
	service := NewBookingService(bookings, flights, passengers, inventories, producer, "booking-events", zap.NewNop().Sugar())
	return service, bookings, flights, passengers, inventories, producer
}

func TestBookingService_Create_Success(t *testing.T) {
	service, bookings, flights, passengers, inventories, producer := newTestService()
	ctx := context.Background()

	passengers.On("GetByEmail", ctx, "a@x.com").Return(&domain.Passenger{ID: 7, Email: "a@x.com"}, nil).Once()
	flights.On("ExistsByID", ctx, int64(1)).Return(true, nil).Once()
	flights.On("ExistsByID", ctx, int64(2)).Return(true, nil).Once()
	inventories.On("HasAvailableSeats", ctx, int64(1), "Economy", 1).Return(true, nil).Once()
	inventories.On("HasAvailableSeats", ctx, int64(2), "Business", 1).Return(true, nil).Once()

	bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking"), mock.AnythingOfType("[]domain.BookingItem")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = 11
			b.CreatedAt = time.Now()
		}).Return(nil).Once()

	details := &domain.BookingDetails{
		Booking:   domain.Booking{ID: 11, Reference: "ref", PassengerID: 7},
		Passenger: domain.Passenger{ID: 7, Email: "a@x.com"},
		Items: []domain.BookingItemDetails{
			{BookingItem: domain.BookingItem{ID: 1, FlightID: 1, Cabin: "Economy", PriceCents: 20000, SegmentOrder: 1}},
			{BookingItem: domain.BookingItem{ID: 2, FlightID: 2, Cabin: "Business", PriceCents: 50000, SegmentOrder: 2}},
		},
	}
	bookings.On("GetDetails", ctx, int64(11)).Return(details, nil).Once()
	producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := service.Create(ctx, CreateBookingInput{
		PassengerEmail: "a@x.com",
		Items: []BookingItemInput{
			{FlightID: 1, Cabin: "Economy", PriceCents: 20000, SegmentOrder: 1},
			{FlightID: 2, Cabin: "Business", PriceCents: 50000, SegmentOrder: 2},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, got.Items, 2)
	bookings.AssertExpectations(t)
	inventories.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestBookingService_Create_PassengerNotFound(t *testing.T) {
	service, bookings, _, passengers, _, _ := newTestService()
	ctx := context.Background()

	passengers.On("GetByEmail", ctx, "ghost@x.com").Return(nil, domain.ErrNotFound).Once()

	_, err := service.Create(ctx, CreateBookingInput{
		PassengerEmail: "ghost@x.com",
		Items:          []BookingItemInput{{FlightID: 1, Cabin: "Economy"}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Create_EmptyItems(t *testing.T) {
	service, bookings, _, passengers, _, _ := newTestService()
	ctx := context.Background()

	passengers.On("GetByEmail", ctx, "a@x.com").Return(&domain.Passenger{ID: 7}, nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{PassengerEmail: "a@x.com"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Create_FlightNotFound(t *testing.T) {
	service, bookings, flights, passengers, _, _ := newTestService()
	ctx := context.Background()

	passengers.On("GetByEmail", ctx, "a@x.com").Return(&domain.Passenger{ID: 7}, nil).Once()
	flights.On("ExistsByID", ctx, int64(99)).Return(false, nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{
		PassengerEmail: "a@x.com",
		Items:          []BookingItemInput{{FlightID: 99, Cabin: "Economy"}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// A single unavailable segment fails the whole booking before any write.
func TestBookingService_Create_SeatsUnavailable(t *testing.T) {
	service, bookings, flights, passengers, inventories, _ := newTestService()
	ctx := context.Background()

	passengers.On("GetByEmail", ctx, "a@x.com").Return(&domain.Passenger{ID: 7}, nil).Once()
	flights.On("ExistsByID", ctx, int64(1)).Return(true, nil).Once()
	flights.On("ExistsByID", ctx, int64(2)).Return(true, nil).Once()
	inventories.On("HasAvailableSeats", ctx, int64(1), "Economy", 1).Return(true, nil).Once()
	inventories.On("HasAvailableSeats", ctx, int64(2), "Economy", 1).Return(false, nil).Once()

	_, err := service.Create(ctx, CreateBookingInput{
		PassengerEmail: "a@x.com",
		Items: []BookingItemInput{
			{FlightID: 1, Cabin: "Economy"},
			{FlightID: 2, Cabin: "Economy"},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// One failed seat release does not stop the others and never blocks the
// booking delete.
func TestBookingService_Cancel_BestEffortRelease(t *testing.T) {
	service, bookings, _, _, inventories, producer := newTestService()
	ctx := context.Background()

	details := &domain.BookingDetails{
		Booking:   domain.Booking{ID: 5, Reference: "ref"},
		Passenger: domain.Passenger{ID: 7, Email: "a@x.com"},
		Items: []domain.BookingItemDetails{
			{BookingItem: domain.BookingItem{FlightID: 1, Cabin: "Economy"}},
			{BookingItem: domain.BookingItem{FlightID: 2, Cabin: "Business"}},
		},
	}
	bookings.On("GetDetails", ctx, int64(5)).Return(details, nil).Once()
	inventories.On("Increase", ctx, int64(1), "Economy", 1).Return(&domain.SeatInventory{}, nil).Once()
	inventories.On("Increase", ctx, int64(2), "Business", 1).Return(nil, errors.New("inventory row deleted")).Once()
	bookings.On("Delete", ctx, int64(5)).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	err := service.Cancel(ctx, 5)

	assert.NoError(t, err)
	bookings.AssertExpectations(t)
	inventories.AssertExpectations(t)
}

func TestBookingService_Cancel_NotFound(t *testing.T) {
	service, bookings, _, _, _, _ := newTestService()
	ctx := context.Background()

	bookings.On("GetDetails", ctx, int64(404)).Return(nil, domain.ErrNotFound).Once()

	err := service.Cancel(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestBookingService_List_Defaults(t *testing.T) {
	service, bookings, _, _, _, _ := newTestService()
	ctx := context.Background()

	bookings.On("List", ctx, 20, 0).Return([]domain.Booking{{ID: 1}}, nil).Once()

	got, err := service.List(ctx, 0, -5)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	bookings.AssertExpectations(t)
}

func TestBookingService_Total(t *testing.T) {
	service, bookings, _, _, _, _ := newTestService()
	ctx := context.Background()

	bookings.On("ExistsByID", ctx, int64(3)).Return(true, nil).Once()
	bookings.On("Total", ctx, int64(3)).Return(int64(70000), nil).Once()

	total, err := service.Total(ctx, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(70000), total)
}

func TestBookingService_Total_NotFound(t *testing.T) {
	service, bookings, _, _, _, _ := newTestService()
	ctx := context.Background()

	bookings.On("ExistsByID", ctx, int64(404)).Return(false, nil).Once()

	_, err := service.Total(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	bookings.AssertNotCalled(t, "Total", mock.Anything, mock.Anything)
}

func TestBookingService_Items_NotFound(t *testing.T) {
	service, bookings, _, _, _, _ := newTestService()
	ctx := context.Background()

	bookings.On("ExistsByID", ctx, int64(404)).Return(false, nil).Once()

	_, err := service.Items(ctx, 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
