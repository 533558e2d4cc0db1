package models

import (
	"errors"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrProfileNotFound     = errors.New("executor profile not found")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrOrderInactive       = errors.New("order is inactive or expired")
	ErrSelfOffer           = errors.New("cannot offer on own order")
	ErrNotExecutor         = errors.New("user is not an executor")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrForbiddenTransition = errors.New("forbidden order status transition")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidPrice        = errors.New("price must be positive")
	ErrInvalidRate         = errors.New("hourly rate cannot exceed daily rate")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicatePhone      = errors.New("duplicate phone number")
)
