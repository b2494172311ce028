package booking

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
	"github.com/Domenick1991/airline-backoffice/internal/kafka"
	"github.com/Domenick1991/airline-backoffice/internal/repository"
	"github.com/Domenick1991/airline-backoffice/internal/service/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.BookingDetails, error)
	Cancel(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindDetails(ctx context.Context, id int64) (*domain.BookingDetails, error)
	FindDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error)
	Items(ctx context.Context, bookingID int64) ([]domain.BookingItem, error)
	Total(ctx context.Context, bookingID int64) (int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	PassengerEmail string             `json:"passenger_email"`
	Items          []BookingItemInput `json:"items"`
}

type BookingItemInput struct {
	FlightID     int64  `json:"flight_id"`
	Cabin        string `json:"cabin"`
	PriceCents   int64  `json:"price_cents"`
	SegmentOrder int    `json:"segment_order"`
}

type BookingService struct {
	bookings    repository.BookingRepository
	flights     repository.FlightRepository
	passengers  repository.PassengerRepository
	inventories inventory.InventoryUseCase
	producer    Producer
	eventsTopic string
	log         *zap.SugaredLogger
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	inventories inventory.InventoryUseCase,
	producer Producer,
	eventsTopic string,
	log *zap.SugaredLogger,
) *BookingService {
	return &BookingService{
		bookings:    bookings,
		flights:     flights,
		passengers:  passengers,
		inventories: inventories,
		producer:    producer,
		eventsTopic: eventsTopic,
		log:         log,
	}
}

// Create books all segments or none. The validation pass runs over every
// item before anything is written; the repository then applies booking,
// items, and seat decrements in one transaction, so a race that defeats the
// pre-check aborts the whole booking instead of leaving partial rows.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.BookingDetails, error) {
	passenger, err := s.passengers.GetByEmail(ctx, input.PassengerEmail)
	if err != nil {
		return nil, fmt.Errorf("passenger %s: %w", input.PassengerEmail, err)
	}

	if len(input.Items) == 0 {
		return nil, fmt.Errorf("booking must have at least one item: %w", domain.ErrInvalidInput)
	}

	for _, item := range input.Items {
		if item.Cabin == "" {
			return nil, fmt.Errorf("cabin is required for flight %d: %w", item.FlightID, domain.ErrInvalidInput)
		}
		if item.PriceCents < 0 {
			return nil, fmt.Errorf("price must not be negative for flight %d: %w", item.FlightID, domain.ErrInvalidInput)
		}

		exists, err := s.flights.ExistsByID(ctx, item.FlightID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("flight %d: %w", item.FlightID, domain.ErrNotFound)
		}

		ok, err := s.inventories.HasAvailableSeats(ctx, item.FlightID, item.Cabin, 1)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("flight %d cabin %s: %w", item.FlightID, item.Cabin, domain.ErrInsufficientSeats)
		}
	}

	booking := &domain.Booking{
		Reference:   uuid.NewString(),
		PassengerID: passenger.ID,
	}
	items := make([]domain.BookingItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.BookingItem{
			FlightID:     item.FlightID,
			Cabin:        item.Cabin,
			PriceCents:   item.PriceCents,
			SegmentOrder: item.SegmentOrder,
		})
	}

	if err := s.bookings.Create(ctx, booking, items); err != nil {
		return nil, err
	}

	details, err := s.bookings.GetDetails(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, details)
	s.log.Infow("booking created", "booking_id", booking.ID, "reference", booking.Reference, "segments", len(items))
	return details, nil
}

// Cancel releases one seat per item and deletes the booking. Seat releases
// are best effort: a failed release is logged and the loop continues, and
// the delete runs regardless of how many releases succeeded.
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	details, err := s.bookings.GetDetails(ctx, id)
	if err != nil {
		return fmt.Errorf("booking %d: %w", id, err)
	}

	for _, item := range details.Items {
		if _, err := s.inventories.Increase(ctx, item.FlightID, item.Cabin, 1); err != nil {
			s.log.Warnw("seat release failed, continuing",
				"booking_id", id, "flight_id", item.FlightID, "cabin", item.Cabin, "error", err)
		}
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventBookingCancelled, details)
	s.log.Infow("booking cancelled", "booking_id", id, "reference", details.Reference)
	return nil
}

func (s *BookingService) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", id, err)
	}
	return b, nil
}

func (s *BookingService) FindDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	details, err := s.bookings.GetDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", id, err)
	}
	return details, nil
}

func (s *BookingService) FindDetailsByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	details, err := s.bookings.GetDetailsByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", reference, err)
	}
	return details, nil
}

func (s *BookingService) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.List(ctx, limit, offset)
}

func (s *BookingService) ListByPassengerEmail(ctx context.Context, email string, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.ListByPassengerEmail(ctx, email, limit, offset)
}

func (s *BookingService) Items(ctx context.Context, bookingID int64) ([]domain.BookingItem, error) {
	exists, err := s.bookings.ExistsByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("booking %d: %w", bookingID, domain.ErrNotFound)
	}
	return s.bookings.ListItems(ctx, bookingID)
}

// Total sums item prices. A booking without items totals zero.
func (s *BookingService) Total(ctx context.Context, bookingID int64) (int64, error) {
	exists, err := s.bookings.ExistsByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("booking %d: %w", bookingID, domain.ErrNotFound)
	}
	return s.bookings.Total(ctx, bookingID)
}

func (s *BookingService) publish(ctx context.Context, eventType string, details *domain.BookingDetails) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}

	var total int64
	for _, item := range details.Items {
		total += item.PriceCents
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		BookingID:      details.ID,
		Reference:      details.Reference,
		PassengerEmail: details.Passenger.Email,
		Segments:       len(details.Items),
		TotalCents:     total,
		CreatedAt:      details.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, details.Reference, event); err != nil {
		s.log.Warnw("failed to publish booking event", "type", eventType, "booking_id", details.ID, "error", err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
