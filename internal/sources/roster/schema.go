package roster

import "github.com/MrSnakeDoc/staffdash/internal/domain"

// File is the top-level structure of a roster YAML file. It mirrors the
// dummyjson users payload so an API dump can be converted with yq.
type File struct {
	Users []User `yaml:"users"`
}

// User is one roster entry. Department and rating are never read from the
// file: they are derived from the id like every other source.
type User struct {
	ID        int            `yaml:"id"`
	FirstName string         `yaml:"firstName"`
	LastName  string         `yaml:"lastName"`
	Email     string         `yaml:"email"`
	Age       int            `yaml:"age,omitempty"`
	Phone     string         `yaml:"phone,omitempty"`
	Image     string         `yaml:"image,omitempty"`
	Address   domain.Address `yaml:"address,omitempty"`
}
