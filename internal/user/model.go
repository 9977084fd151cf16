package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// User is a shop operator. Password holds the bcrypt hash and never
// leaves the service layer.
type User struct {
	ID        uuid.UUID `json:"_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
}

// UpdateUserParams holds the columns a partial update may set.
type UpdateUserParams struct {
	Username     *string
	Name         *string
	PasswordHash *string
}

// ProfileUpdate is a self-service edit. NewPassword requires
// CurrentPassword to match the stored hash.
type ProfileUpdate struct {
	Username        *string
	Name            *string
	CurrentPassword string
	NewPassword     string
}

// CashierUpdate is an admin edit of a cashier account; no current
// password is needed.
type CashierUpdate struct {
	Username *string
	Name     *string
	Password *string
}
