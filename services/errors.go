package services

import "errors"

// Sentinel errors แยกชนิดความผิดพลาดให้ controller map เป็น HTTP code ได้
// validation -> 400, conflict -> 409, not found -> 404, signature -> 403
var (
	// validation
	ErrInvalidDates      = errors.New("invalid_dates")
	ErrMissingContact    = errors.New("missing_contact")
	ErrInvalidMethod     = errors.New("invalid_payment_method")
	ErrCategoryNotFound  = errors.New("category_not_found")
	ErrCategoryInactive  = errors.New("category_inactive")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidOccupancy  = errors.New("invalid_occupancy")
	ErrMalformedCallback = errors.New("malformed_callback")

	// conflict
	ErrRoomUnavailable         = errors.New("room_unavailable")
	ErrBookingAlreadyCancelled = errors.New("booking_already_cancelled")
	ErrBookingNotCancelled     = errors.New("booking_not_cancelled")

	// not found
	ErrBookingNotFound = errors.New("booking_not_found")

	// security (payment callback)
	ErrInvalidSignature = errors.New("invalid_signature")
)
