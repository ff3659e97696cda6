package services

import (
	"context"
	"lodgepay/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	SaveCharge(ctx context.Context, record *entity.ChargeRecord) error

	GetAddons(ctx context.Context) ([]entity.Addon, error)
	SaveAddon(ctx context.Context, addon *entity.Addon) error
	DeleteAddon(ctx context.Context, name string) error
}

type Data interface {
	DataType() string
}
