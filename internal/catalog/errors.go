package catalog

import "errors"

var (
	ErrRoomNotFound  = errors.New("Room not found")
	ErrDuplicateRoom = errors.New("Room with this id already exists")
	ErrInvalidRoom   = errors.New("Room id, name and total shares are required")
)
