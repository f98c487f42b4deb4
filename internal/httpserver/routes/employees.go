package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/handlers"
)

func init() { Register(registerEmployees) }

func registerEmployees(r chi.Router, d deps.Deps) {
	r.Get("/api/employees", handlers.Employees(d))
	r.Get("/api/employees/{id}", handlers.Employee(d))
	r.Post("/api/employees/{id}/promote", handlers.Promote(d))
	r.Post("/api/employees/{id}/projects", handlers.AssignProject(d))
	r.Get("/api/departments", handlers.Departments(d))
	r.Get("/api/analytics", handlers.Analytics(d))
}
