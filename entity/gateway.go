package entity

import "encoding/xml"

// GatewayResponse is the normalized shape of a processor XML reply.
// The processor answers with one of two root tags (mwResponse or
// Response) depending on the call; the parser accepts either and the
// root name is kept for diagnostics.
type GatewayResponse struct {
	XMLName          xml.Name
	ResponseCode     string `xml:"responseCode"`
	ResponseMessage  string `xml:"responseMessage"`
	TransactionID    string `xml:"transactionID"`
	AuthCode         string `xml:"authCode"`
	AuthMessage      string `xml:"authMessage"`
	AuthResponseCode string `xml:"authResponseCode"`
	AuthSettledDate  string `xml:"authSettledDate"`
	// CardNumber is returned masked by the processor.
	CardNumber string `xml:"paymentCardNumber"`
	Token      string `xml:"token"`
}

// Approved reports whether the processor accepted the request.
// The code is the string "0", not a numeric zero; a missing code is
// never treated as approval.
func (r *GatewayResponse) Approved() bool {
	return r.ResponseCode == "0"
}

// FailureStage classifies where a charge attempt failed.
type FailureStage string

const (
	// StageValidation failures are local, detected before any network call.
	StageValidation FailureStage = "validation"
	// StageToken failures mean the access token was refused or missing;
	// the charge call is never attempted.
	StageToken FailureStage = "token"
	// StageProtocol failures are malformed or incomplete processor replies.
	StageProtocol FailureStage = "protocol"
	// StageDecline is a well-formed processor rejection of the charge.
	StageDecline FailureStage = "decline"
	// StageTransport failures are connection-level errors.
	StageTransport FailureStage = "transport"
)

// GatewayError is a classified charge failure with a message safe to
// surface to the caller.
type GatewayError struct {
	Stage   FailureStage
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// NewGatewayError builds a classified failure.
func NewGatewayError(stage FailureStage, message string) *GatewayError {
	return &GatewayError{Stage: stage, Message: message}
}
