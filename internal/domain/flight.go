package domain

import "time"

type Tag struct {
	ID   int64
	Name string
}

type Flight struct {
	ID            int64
	Number        string
	DepartureTime time.Time
	ArrivalTime   time.Time
	AirlineID     int64
	OriginID      int64
	DestinationID int64
	Tags          []Tag
}

// FlightDetails is a flight with its associations resolved. Booking
// projections embed it so responses carry airline and airport info
// without extra round trips.
type FlightDetails struct {
	Flight
	Airline     Airline
	Origin      Airport
	Destination Airport
}
