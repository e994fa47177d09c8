package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/topshelfent/booking-api/store"
)

// storeStatus maps store failures onto HTTP statuses. Anything
// unrecognized is a plain 500.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, store.ErrSlotAlreadyBooked), errors.Is(err, store.ErrOverlap):
		return fiber.StatusConflict
	case errors.Is(err, store.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
