package domain

import "time"

// Booking owns its items; cancelling a booking removes them in cascade.
// Reference is a uuid used for external lookups alongside the serial id.
type Booking struct {
	ID          int64
	Reference   string
	PassengerID int64
	CreatedAt   time.Time
}

// BookingItem is one segment of an itinerary. Each item consumes exactly
// one seat of the matching (flight, cabin) inventory. SegmentOrder drives
// presentation only and is not required to be contiguous.
type BookingItem struct {
	ID           int64
	BookingID    int64
	FlightID     int64
	Cabin        string
	PriceCents   int64
	SegmentOrder int
}

type BookingItemDetails struct {
	BookingItem
	Flight FlightDetails
}

type BookingDetails struct {
	Booking
	Passenger Passenger
	Items     []BookingItemDetails
}
