package domain

type Airline struct {
	ID   int64
	Code string
	Name string
}
