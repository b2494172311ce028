package domain

// SeatInventory tracks total versus available seats for one (flight, cabin)
// pair. The pair is unique; 0 <= AvailableSeats <= TotalSeats holds after
// every mutation.
type SeatInventory struct {
	ID             int64
	FlightID       int64
	Cabin          string
	TotalSeats     int
	AvailableSeats int
}
