package service

import "errors"

// Error taxonomy shared by the resource services. Handlers map these onto
// HTTP statuses: ErrValidation → 400, ErrNotFound → 404, ErrForbidden → 403.
var (
	ErrValidation = errors.New("missing or malformed required field")
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("resource belongs to another user")
)
