package errs

import "errors"

var (
	ErrInvalidBody           = errors.New("E0001: request body is not a valid registration")
	ErrFullNameRequired      = errors.New("E0002: fullName is required")
	ErrEmailRequired         = errors.New("E0003: email is required")
	ErrContactNumberRequired = errors.New("E0004: contactNumber is required")
	ErrCurrentYearRequired   = errors.New("E0005: currentYear is required")
	ErrBranchRequired        = errors.New("E0006: branch is required")
	ErrAlreadyExists         = errors.New("E0007: email already registered")
	ErrDatabase              = errors.New("E0008: database error")
	ErrQueue                 = errors.New("E0009: queue error")
	ErrMail                  = errors.New("E0010: error sending email")
	ErrJWT                   = errors.New("E0011: JWT failure")
	ErrTicketExpired         = errors.New("E0012: ticket expired")
)
