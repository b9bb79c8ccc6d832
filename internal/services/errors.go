package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUpdateFailed       = errors.New("post update failed")
	ErrDeleteFailed       = errors.New("post delete failed")
	ErrStore              = errors.New("store failure")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
