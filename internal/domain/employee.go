package domain

// Department names. The set is closed: every Employee carries one of these.
const (
	DepartmentEngineering = "Engineering"
	DepartmentMarketing   = "Marketing"
	DepartmentSales       = "Sales"
	DepartmentHR          = "HR"
	DepartmentFinance     = "Finance"
	DepartmentOperations  = "Operations"
)

// Departments lists the department enumeration in display order.
var Departments = []string{
	DepartmentEngineering,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentHR,
	DepartmentFinance,
	DepartmentOperations,
}

const (
	MinRating = 1
	MaxRating = 5
)

// IsDepartment reports whether name belongs to the department enumeration.
func IsDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Address is the postal address of an employee.
type Address struct {
	Address    string `json:"address" yaml:"address"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state" yaml:"state"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
}

// Employee is one person shown on the dashboard.
//
// Employees are built once from raw source data (see Annotate) and are never
// mutated afterwards; collections of them are shared read-only between the
// roster index and request handlers.
type Employee struct {
	// ─────────────────────────────
	// Identity (from the source)
	// ─────────────────────────────

	// ID is the stable identifier assigned by the upstream users API.
	ID int `json:"id"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Phone     string `json:"phone"`

	Address Address `json:"address"`

	// Image is the avatar URL.
	Image string `json:"image"`

	// ─────────────────────────────
	// Synthetic annotations
	// ─────────────────────────────

	// Department is one of Departments.
	Department string `json:"department"`

	// Rating is a performance rating in [MinRating, MaxRating].
	Rating int `json:"rating"`
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}
