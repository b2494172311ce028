package api

import (
	"time"

	"github.com/Domenick1991/airline-backoffice/internal/domain"
)

// Response shapes and their mapping functions. Cycles are broken by
// construction: items never carry their booking back-reference.

type airlineResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func toAirlineResponse(a domain.Airline) airlineResponse {
	return airlineResponse{ID: a.ID, Code: a.Code, Name: a.Name}
}

type airportResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

func toAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Code: a.Code, Name: a.Name, City: a.City}
}

type flightResponse struct {
	ID            int64            `json:"id"`
	Number        string           `json:"number"`
	DepartureTime string           `json:"departure_time"`
	ArrivalTime   string           `json:"arrival_time"`
	Airline       *airlineResponse `json:"airline,omitempty"`
	Origin        *airportResponse `json:"origin,omitempty"`
	Destination   *airportResponse `json:"destination,omitempty"`
	Tags          []string         `json:"tags"`
}

func toFlightResponse(fd domain.FlightDetails) flightResponse {
	airline := toAirlineResponse(fd.Airline)
	origin := toAirportResponse(fd.Origin)
	destination := toAirportResponse(fd.Destination)

	tags := make([]string, 0, len(fd.Tags))
	for _, t := range fd.Tags {
		tags = append(tags, t.Name)
	}

	return flightResponse{
		ID:            fd.ID,
		Number:        fd.Number,
		DepartureTime: fd.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   fd.ArrivalTime.Format(time.RFC3339),
		Airline:       &airline,
		Origin:        &origin,
		Destination:   &destination,
		Tags:          tags,
	}
}

func toFlightResponses(flights []domain.FlightDetails) []flightResponse {
	resp := make([]flightResponse, 0, len(flights))
	for _, fd := range flights {
		resp = append(resp, toFlightResponse(fd))
	}
	return resp
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toTagResponse(t domain.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

type passengerResponse struct {
	ID       int64            `json:"id"`
	FullName string           `json:"full_name"`
	Email    string           `json:"email"`
	Profile  *profileResponse `json:"profile,omitempty"`
}

type profileResponse struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

func toPassengerResponse(p domain.Passenger) passengerResponse {
	resp := passengerResponse{ID: p.ID, FullName: p.FullName, Email: p.Email}
	if p.Profile != nil {
		resp.Profile = &profileResponse{Phone: p.Profile.Phone, CountryCode: p.Profile.CountryCode}
	}
	return resp
}

type inventoryResponse struct {
	ID             int64  `json:"id"`
	FlightID       int64  `json:"flight_id"`
	Cabin          string `json:"cabin"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

func toInventoryResponse(inv domain.SeatInventory) inventoryResponse {
	return inventoryResponse{
		ID:             inv.ID,
		FlightID:       inv.FlightID,
		Cabin:          inv.Cabin,
		TotalSeats:     inv.TotalSeats,
		AvailableSeats: inv.AvailableSeats,
	}
}

type bookingItemResponse struct {
	ID           int64          `json:"id"`
	Cabin        string         `json:"cabin"`
	PriceCents   int64          `json:"price_cents"`
	SegmentOrder int            `json:"segment_order"`
	Flight       flightResponse `json:"flight"`
}

type bookingResponse struct {
	ID        int64                 `json:"id"`
	Reference string                `json:"reference"`
	CreatedAt string                `json:"created_at"`
	Passenger passengerResponse     `json:"passenger"`
	Items     []bookingItemResponse `json:"items"`
}

func toBookingResponse(bd domain.BookingDetails) bookingResponse {
	items := make([]bookingItemResponse, 0, len(bd.Items))
	for _, it := range bd.Items {
		items = append(items, bookingItemResponse{
			ID:           it.ID,
			Cabin:        it.Cabin,
			PriceCents:   it.PriceCents,
			SegmentOrder: it.SegmentOrder,
			Flight:       toFlightResponse(it.Flight),
		})
	}
	return bookingResponse{
		ID:        bd.ID,
		Reference: bd.Reference,
		CreatedAt: bd.CreatedAt.Format(time.RFC3339),
		Passenger: toPassengerResponse(bd.Passenger),
		Items:     items,
	}
}

type bookingSummaryResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	CreatedAt string `json:"created_at"`
}

func toBookingSummaryResponse(b domain.Booking) bookingSummaryResponse {
	return bookingSummaryResponse{ID: b.ID, Reference: b.Reference, CreatedAt: b.CreatedAt.Format(time.RFC3339)}
}

type bookingItemRowResponse struct {
	ID           int64  `json:"id"`
	FlightID     int64  `json:"flight_id"`
	Cabin        string `json:"cabin"`
	PriceCents   int64  `json:"price_cents"`
	SegmentOrder int    `json:"segment_order"`
}

func toBookingItemRowResponse(it domain.BookingItem) bookingItemRowResponse {
	return bookingItemRowResponse{
		ID:           it.ID,
		FlightID:     it.FlightID,
		Cabin:        it.Cabin,
		PriceCents:   it.PriceCents,
		SegmentOrder: it.SegmentOrder,
	}
}
