package internal

import (
	"context"
	"fmt"
	"lodgepay/config"
	"lodgepay/entity"
	"lodgepay/services"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Payments is the charge orchestrator. One SubmitCharge call runs the
// whole sequence: local validation, fee total check, token acquisition,
// signing and charge submission. Each invocation is independent; the
// only shared state is the read-only merchant configuration.
type Payments struct {
	conf     *config.Config
	database services.Database
	logger   services.LogHandler
	gateway  *Gateway
	signer   *Signer
}

func NewPayments(conf *config.Config) *Payments {
	return &Payments{
		conf:    conf,
		gateway: NewGateway(conf),
		signer:  NewSigner(conf.Merchant.Passphrase, conf.Merchant.UUID),
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	p.gateway.SetLogger(logger)
	if p.conf.DisablePayment {
		p.logger.Warn("service disabled")
	} else {
		p.logger.Info("service enabled")
	}
}

// SubmitCharge validates the request, acquires an access token and
// submits the card charge. Every failure path returns a discriminated
// outcome; nothing here panics across the boundary. The two network
// calls are strictly sequential and the charge is never attempted when
// the token step fails.
func (p *Payments) SubmitCharge(ctx context.Context, request *entity.ChargeRequest) *entity.ChargeOutcome {
	reqID := GetRequestID(ctx)

	name := strings.TrimSpace(request.CardName)
	if len(name) < 2 || !namePattern.MatchString(name) {
		return p.reject(reqID, entity.NewGatewayError(entity.StageValidation, "please enter a valid name"))
	}

	amount, err := p.resolveAmount(request)
	if err != nil {
		return p.reject(reqID, err)
	}
	amountText := FormatAmount(amount)

	card, err := p.validateCard(request)
	if err != nil {
		return p.reject(reqID, err)
	}

	if p.conf.Merchant.UUID == "" || p.conf.Merchant.ApiKey == "" || p.conf.Merchant.Passphrase == "" {
		p.logger.Error("submit charge", fmt.Errorf("merchant not configured"))
		return failureOutcome("merchant not configured")
	}
	if p.conf.DisablePayment {
		p.logger.Warn(fmt.Sprintf("[%s] charge of %s refused: payments disabled", reqID, amountText))
		return failureOutcome("payment service disabled")
	}

	p.logger.Info(fmt.Sprintf("[%s] charging %s %s to card %s", reqID, amountText, p.conf.Merchant.Currency, secret(card.Number)))

	if _, err := p.gateway.GetAccessToken(ctx); err != nil {
		p.logger.Error(fmt.Sprintf("[%s] get access token", reqID), err)
		return p.record(ctx, reqID, request, amountText, nil, err)
	}

	payment := &cardPayment{
		Amount:     amountText,
		Currency:   p.conf.Merchant.Currency,
		Product:    p.conf.Merchant.Product,
		Customer:   p.customerWithDefaults(request.CustomerDetails, name),
		CardNumber: card.Number,
		CardName:   card.Holder,
		Expiry:     fmt.Sprintf("%02d%02d", card.ExpiryMonth, card.ExpiryYear),
		CSC:        card.CVC,
		Hash:       p.signer.Hash(amountText, p.conf.Merchant.Currency),
	}

	response, err := p.gateway.ProcessCard(ctx, payment)
	if err != nil {
		p.logger.Error(fmt.Sprintf("[%s] process card", reqID), err)
		return p.record(ctx, reqID, request, amountText, nil, err)
	}

	if !response.Approved() {
		message := response.ResponseMessage
		if message == "" {
			message = "Payment processing failed"
		}
		decline := entity.NewGatewayError(entity.StageDecline, message)
		p.logger.Warn(fmt.Sprintf("[%s] declined: code %s; %s", reqID, response.ResponseCode, message))
		return p.record(ctx, reqID, request, amountText, response, decline)
	}

	p.logger.Info(fmt.Sprintf("[%s] approved: transaction %s; auth %s", reqID, response.TransactionID, response.AuthCode))
	return p.record(ctx, reqID, request, amountText, response, nil)
}

// resolveAmount turns the request into a validated total. When a fee
// breakdown accompanies the charge the total is recomputed from it and
// a mismatching client amount is rejected rather than signed.
func (p *Payments) resolveAmount(request *entity.ChargeRequest) (decimal.Decimal, error) {
	var amount decimal.Decimal
	var err error

	if request.Amount != "" {
		amount, err = decimal.NewFromString(request.Amount)
		if err != nil {
			return decimal.Zero, entity.NewGatewayError(entity.StageValidation, "invalid amount")
		}
	}

	if request.Breakdown != nil {
		if err := ValidateBreakdown(request.Breakdown); err != nil {
			return decimal.Zero, entity.NewGatewayError(entity.StageValidation, err.Error())
		}
		total := ComputeTotal(request.Breakdown)
		if request.Amount != "" && !total.Equal(amount) {
			return decimal.Zero, entity.NewGatewayError(entity.StageValidation, "amount does not match fee breakdown")
		}
		amount = total
	} else if request.Amount == "" {
		return decimal.Zero, entity.NewGatewayError(entity.StageValidation, "invalid amount")
	}

	limit, limitErr := decimal.NewFromString(p.conf.Merchant.AmountLimit)
	if limitErr != nil {
		limit = decimal.Zero
	}
	if err := ValidateTotal(amount, limit); err != nil {
		return decimal.Zero, entity.NewGatewayError(entity.StageValidation, err.Error())
	}
	return amount, nil
}

// validateCard runs the local card checks in fixed order: number,
// brand, expiry, CVC. An unsupported brand is rejected here, before
// any network call.
func (p *Payments) validateCard(request *entity.ChargeRequest) (*entity.Card, error) {
	number := NormalizeCardNumber(request.CardNumber)
	if !ValidateCardNumber(number) {
		return nil, entity.NewGatewayError(entity.StageValidation, "invalid card number")
	}

	brand := DetectBrand(number)
	if brand == entity.BrandNone {
		return nil, entity.NewGatewayError(entity.StageValidation, "unsupported card type")
	}

	month, year, ok := ParseExpiry(request.ExpiryDate)
	if !ok || !ValidateExpiry(month, year) {
		return nil, entity.NewGatewayError(entity.StageValidation, "invalid expiry date")
	}

	if !ValidateCVC(request.CVC, brand) {
		return nil, entity.NewGatewayError(entity.StageValidation, "invalid CVC")
	}

	return &entity.Card{
		Number:      number,
		Holder:      strings.TrimSpace(request.CardName),
		ExpiryMonth: month,
		ExpiryYear:  year,
		CVC:         request.CVC,
	}, nil
}

// customerWithDefaults fills empty optional customer fields from the
// configured fallbacks, once, at request assembly.
func (p *Payments) customerWithDefaults(customer entity.CustomerDetails, cardName string) entity.CustomerDetails {
	if customer.Name == "" {
		customer.Name = cardName
	}
	if customer.Country == "" {
		customer.Country = p.conf.Customer.Country
	}
	if customer.State == "" {
		customer.State = p.conf.Customer.State
	}
	if customer.City == "" {
		customer.City = p.conf.Customer.City
	}
	if customer.Address == "" {
		customer.Address = p.conf.Customer.Address
	}
	if customer.PostCode == "" {
		customer.PostCode = p.conf.Customer.PostCode
	}
	if customer.Email == "" {
		customer.Email = p.conf.Customer.Email
	}
	return customer
}

// record writes the audit document when storage is attached and maps
// the gateway result to the boundary outcome.
func (p *Payments) record(ctx context.Context, reqID string, request *entity.ChargeRequest, amount string, response *entity.GatewayResponse, chargeErr error) *entity.ChargeOutcome {
	record := entity.ChargeRecord{
		Time:      time.Now(),
		RequestID: reqID,
		Amount:    amount,
		Currency:  p.conf.Merchant.Currency,
		Product:   p.conf.Merchant.Product,
	}
	if request.Breakdown != nil {
		record.BookingRef = request.Breakdown.BookingRef
	}
	if response != nil {
		record.ResponseCode = response.ResponseCode
		record.TransactionID = response.TransactionID
		record.AuthCode = response.AuthCode
	}

	var outcome *entity.ChargeOutcome
	if chargeErr == nil {
		record.Success = true
		record.Result = response.ResponseMessage
		outcome = &entity.ChargeOutcome{
			Success: true,
			Data: &entity.ChargeData{
				TransactionID:    response.TransactionID,
				ResponseCode:     response.ResponseCode,
				ResponseMessage:  response.ResponseMessage,
				AuthCode:         response.AuthCode,
				AuthMessage:      response.AuthMessage,
				AuthResponseCode: response.AuthResponseCode,
				AuthSettledDate:  response.AuthSettledDate,
				CardNumber:       response.CardNumber,
			},
		}
	} else {
		record.Result = chargeErr.Error()
		outcome = failureOutcome(chargeErr.Error())
	}

	if p.database != nil {
		if err := p.database.SaveCharge(ctx, &record); err != nil {
			p.logger.Error("save charge record", err)
		}
	}
	return outcome
}

func (p *Payments) reject(reqID string, err error) *entity.ChargeOutcome {
	p.logger.Warn(fmt.Sprintf("[%s] rejected: %v", reqID, err))
	return failureOutcome(err.Error())
}

func failureOutcome(message string) *entity.ChargeOutcome {
	return &entity.ChargeOutcome{Error: message}
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
