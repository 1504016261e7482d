package domain

type Product struct {
	ID    int64
	Name  string
	Price Money
}
