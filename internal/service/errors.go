package service

import "errors"

// Sentinel errors surfaced to the API layer.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user with this username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserProtected      = errors.New("the admin account cannot be deleted")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartLineNotFound   = errors.New("cart line not found")
)
