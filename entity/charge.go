package entity

import "time"

// CustomerDetails carries the billing contact attached to a charge.
// Empty optional fields are filled from configured defaults at request
// assembly time.
type CustomerDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	PostCode string `json:"postCode,omitempty"`
	Country  string `json:"country,omitempty"`
}

// ChargeRequest is the inbound boundary payload for a single charge
// attempt. Amount is a decimal string; ExpiryDate is MM/YY.
// Breakdown is optional: when present the server recomputes the total
// from it and rejects a mismatching Amount.
type ChargeRequest struct {
	Amount          string          `json:"amount"`
	CardNumber      string          `json:"cardNumber"`
	CardName        string          `json:"cardName"`
	ExpiryDate      string          `json:"expiryDate"`
	CVC             string          `json:"cvc"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	Breakdown       *FeeBreakdown   `json:"breakdown,omitempty"`
}

// ChargeData is the success payload surfaced to the caller, propagated
// unchanged from the processor response.
type ChargeData struct {
	TransactionID    string `json:"transactionID"`
	ResponseCode     string `json:"responseCode"`
	ResponseMessage  string `json:"responseMessage"`
	AuthCode         string `json:"authCode"`
	AuthMessage      string `json:"authMessage"`
	AuthResponseCode string `json:"authResponseCode"`
	AuthSettledDate  string `json:"authSettledDate"`
	// CardNumber is the masked card number as echoed by the processor.
	CardNumber string `json:"paymentCardNumber"`
}

// ChargeOutcome is the discriminated result of a charge attempt.
// Exactly one of Data or Error is populated.
type ChargeOutcome struct {
	Success bool        `json:"success"`
	Data    *ChargeData `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ChargeRecord is the audit document written to storage after each
// gateway round trip. It never contains raw card data.
type ChargeRecord struct {
	Time          time.Time `json:"time" bson:"time"`
	RequestID     string    `json:"request_id" bson:"request_id"`
	Amount        string    `json:"amount" bson:"amount"`
	Currency      string    `json:"currency" bson:"currency"`
	Product       string    `json:"product" bson:"product"`
	BookingRef    string    `json:"booking_ref,omitempty" bson:"booking_ref,omitempty"`
	Success       bool      `json:"success" bson:"success"`
	ResponseCode  string    `json:"response_code" bson:"response_code"`
	TransactionID string    `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	AuthCode      string    `json:"auth_code,omitempty" bson:"auth_code,omitempty"`
	Result        string    `json:"result" bson:"result"`
}
