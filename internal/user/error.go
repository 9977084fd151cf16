package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCashierNotFound    = errors.New("cashier not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSecretKey   = errors.New("invalid admin secret key")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrPasswordRequired   = errors.New("current password is required to set new password")
	ErrWrongPassword      = errors.New("password is incorrect")
	ErrAdminRequired      = errors.New("admin access required")
)
