package domain

type Airport struct {
	ID   int64
	Code string
	Name string
	City string
}
