package utils

const (
	UserIDKey   contextKey = "user_id"
	UserNameKey contextKey = "username"
	UserRoleKey contextKey = "role"
)

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)
