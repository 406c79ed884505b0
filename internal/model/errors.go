package model

import "errors"

var (
	// ErrAddressActive is returned when a connection is attempted from an
	// address that already holds a live reservation.
	ErrAddressActive = errors.New("address already active")

	// ErrInvalidCapacity is returned when room creation is requested with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvalidPin is returned when no live room exists for the given PIN.
	ErrInvalidPin = errors.New("invalid pin")

	// ErrRoomFull is returned when a room's membership already equals its capacity.
	ErrRoomFull = errors.New("room is full")

	// ErrAlreadyInRoom is returned when a connection that is already bound to a
	// room attempts to join another one.
	ErrAlreadyInRoom = errors.New("already in a room")

	// ErrPinSpaceExhausted is returned when PIN generation gives up after the
	// defensive attempt cap.
	ErrPinSpaceExhausted = errors.New("no free pin available")
)
