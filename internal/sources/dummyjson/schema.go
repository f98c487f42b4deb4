package dummyjson

import "github.com/MrSnakeDoc/staffdash/internal/domain"

// UserPage is the body of GET /users.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// User is the subset of a dummyjson user the dashboard reads.
type User struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Age       int     `json:"age"`
	Phone     string  `json:"phone"`
	Image     string  `json:"image"`
	Address   Address `json:"address"`
}

type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

func (u User) person() domain.Person {
	return domain.Person{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Phone:     u.Phone,
		Image:     u.Image,
		Address: domain.Address{
			Address:    u.Address.Address,
			City:       u.Address.City,
			State:      u.Address.State,
			PostalCode: u.Address.PostalCode,
		},
	}
}
