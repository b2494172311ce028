package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, input booking.CreateBookingInput) (*domain.BookingDetails, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) FindDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) FindDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, email, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Items(ctx context.Context, bookingID int64) ([]domain.BookingItem, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.BookingItem), args.Error(1)
}

func (m *MockBookingUseCase) Total(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

func sampleDetails() *domain.BookingDetails {
	return &domain.BookingDetails{
		Booking: domain.Booking{
			ID:          1,
			Reference:   "6f1c7e36-9b1e-4a83-8f0e-2d5a6b7c8d9e",
			PassengerID: 7,
			CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
		Passenger: domain.Passenger{ID: 7, FullName: "Ada Lovelace", Email: "ada@x.com"},
		Items: []domain.BookingItemDetails{
			{
				BookingItem: domain.BookingItem{ID: 1, BookingID: 1, FlightID: 3, Cabin: "Economy", PriceCents: 20000, SegmentOrder: 1},
				Flight:      domain.FlightDetails{Flight: domain.Flight{ID: 3, Number: "BA117"}},
			},
		},
	}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := createBookingRequest{
		PassengerEmail: "ada@x.com",
		Items: []createBookingItemRequest{
			{FlightID: 3, Cabin: "Economy", PriceCents: 20000, SegmentOrder: 1},
		},
	}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	details := sampleDetails()
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("booking.CreateBookingInput")).Return(details, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, details.Reference, response.Reference)
	assert.Len(t, response.Items, 1)
	assert.Equal(t, "BA117", response.Items[0].Flight.Number)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_insufficientSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := createBookingRequest{
		PassengerEmail: "ada@x.com",
		Items: []createBookingItemRequest{
			{FlightID: 3, Cabin: "Economy"},
		},
	}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("booking.CreateBookingInput")).
		Return(nil, domain.ErrInsufficientSeats)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "404"}}
	c.Request = httptest.NewRequest("GET", "/bookings/404", nil)

	mockService.On("FindDetails", c.Request.Context(), int64(404)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_getByReference(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	details := sampleDetails()
	c.Params = gin.Params{{Key: "reference", Value: details.Reference}}
	c.Request = httptest.NewRequest("GET", "/bookings/by-reference/"+details.Reference, nil)

	mockService.On("FindDetailsByReference", c.Request.Context(), details.Reference).Return(details, nil)

	handler.getByReference(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, details.ID, response.ID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_total(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/bookings/1/total", nil)

	mockService.On("Total", c.Request.Context(), int64(1)).Return(int64(20000), nil)

	handler.total(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]int64
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), response["total_cents"])

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/1", nil)

	mockService.On("Cancel", c.Request.Context(), int64(1)).Return(nil)

	handler.cancel(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_all(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	bookings := []domain.Booking{{ID: 1, Reference: "ref-1"}, {ID: 2, Reference: "ref-2"}}
	mockService.On("List", c.Request.Context(), 20, 0).Return(bookings, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingSummaryResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)

	mockService.AssertNotCalled(t, "ListByPassengerEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list_byEmail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings?email=ada@x.com", nil)

	bookings := []domain.Booking{{ID: 1, Reference: "ref-1"}}
	mockService.On("ListByPassengerEmail", c.Request.Context(), "ada@x.com", 20, 0).Return(bookings, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	mockService.AssertExpectations(t)
}
