package employee

import (
	"time"
)

// Employee is the minimal identity this service needs: a stable ID, the
// login code, and the bcrypt hash of the kiosk PIN. Employee master data
// lives in the surrounding HR system.
type Employee struct {
	ID        string
	Code      string
	FullName  string
	PINHash   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
