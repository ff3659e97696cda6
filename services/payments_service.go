package services

import (
	"context"
	"lodgepay/entity"
)

type Payments interface {
	SubmitCharge(ctx context.Context, request *entity.ChargeRequest) *entity.ChargeOutcome
}
