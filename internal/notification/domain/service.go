package domain

import (
	"context"
	"errors"
)

type RegisterDeviceRequest struct {
	CustomerID string  `json:"customer_id"`
	Token      string  `json:"token"`
	Platform   string  `json:"platform"`
	DeviceName *string `json:"device_name"`
}

// Service manages the device-token registry. Registering an existing token
// re-activates it and reassigns ownership.
type Service interface {
	Register(ctx context.Context, req RegisterDeviceRequest) (*DeviceToken, error)
	Unregister(ctx context.Context, token string) error
	ListActive(ctx context.Context, customerID string) ([]DeviceToken, error)
}

var (
	ErrInvalidToken    = errors.New("invalid_token")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidPlatform = errors.New("invalid_platform")
	ErrNotFound        = errors.New("not_found")
)
