package domain

type PassengerProfile struct {
	ID          int64
	Phone       string
	CountryCode string
}

type Passenger struct {
	ID       int64
	FullName string
	Email    string
	Profile  *PassengerProfile
}
