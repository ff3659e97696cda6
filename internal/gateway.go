package internal

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"lodgepay/config"
	"lodgepay/entity"
	"lodgepay/services"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway talks to the payment processor over its form-encoded POST
// protocol. Both operations go to the same endpoint and are told apart
// by the "method" form field; responses are XML.
type Gateway struct {
	conf       *config.Config
	logger     services.LogHandler
	endpoint   string
	httpClient *http.Client
}

// NewGateway creates a processor client with a pooled HTTP transport.
func NewGateway(conf *config.Config) *Gateway {
	return &Gateway{
		conf:     conf,
		endpoint: conf.Merchant.Endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
	}
}

func (g *Gateway) SetLogger(logger services.LogHandler) {
	g.logger = logger
}

// cardPayment carries the assembled field values for one processCard
// call. Everything is already normalized: amount in 2-decimal form,
// card number digits-only, expiry as MMYY, customer defaults applied.
type cardPayment struct {
	Amount     string
	Currency   string
	Product    string
	Customer   entity.CustomerDetails
	CardNumber string
	CardName   string
	Expiry     string
	CSC        string
	Hash       string
}

// GetAccessToken performs the first step of the charge sequence.
// Any response code other than "0", or a missing code, is a fatal
// precondition failure; the caller must not attempt the charge.
func (g *Gateway) GetAccessToken(ctx context.Context) (*entity.GatewayResponse, error) {
	form := url.Values{}
	form.Set("method", "getAccessToken")
	form.Set("merchantUUID", g.conf.Merchant.UUID)
	form.Set("apiKey", g.conf.Merchant.ApiKey)

	response, err := g.post(ctx, form)
	if err != nil {
		return nil, err
	}
	if response.ResponseCode == "" {
		return nil, entity.NewGatewayError(entity.StageToken, "invalid token response")
	}
	if !response.Approved() {
		message := response.ResponseMessage
		if message == "" {
			message = "token request failed"
		}
		return nil, entity.NewGatewayError(entity.StageToken, message)
	}
	return response, nil
}

// ProcessCard submits the charge itself. A transport-level success with
// a non-zero response code is returned as a normal response; classifying
// it as a decline is the caller's job.
func (g *Gateway) ProcessCard(ctx context.Context, payment *cardPayment) (*entity.GatewayResponse, error) {
	form := url.Values{}
	form.Set("method", "processCard")
	form.Set("merchantUUID", g.conf.Merchant.UUID)
	form.Set("apiKey", g.conf.Merchant.ApiKey)
	form.Set("transactionAmount", payment.Amount)
	form.Set("transactionCurrency", payment.Currency)
	form.Set("transactionProduct", payment.Product)
	form.Set("customerName", payment.Customer.Name)
	form.Set("customerCountry", payment.Customer.Country)
	form.Set("customerState", payment.Customer.State)
	form.Set("customerCity", payment.Customer.City)
	form.Set("customerAddress", payment.Customer.Address)
	form.Set("customerPostCode", payment.Customer.PostCode)
	form.Set("customerEmail", payment.Customer.Email)
	form.Set("paymentCardNumber", payment.CardNumber)
	form.Set("paymentCardName", payment.CardName)
	form.Set("paymentCardExpiry", payment.Expiry)
	form.Set("paymentCardCSC", payment.CSC)
	form.Set("hash", payment.Hash)

	response, err := g.post(ctx, form)
	if err != nil {
		return nil, err
	}
	if response.ResponseCode == "" {
		return nil, entity.NewGatewayError(entity.StageProtocol, "invalid payment response")
	}
	return response, nil
}

func (g *Gateway) post(ctx context.Context, form url.Values) (*entity.GatewayResponse, error) {
	request, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		g.logger.Error("create http request", err)
		return nil, entity.NewGatewayError(entity.StageTransport, "payment processing error")
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := g.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			g.logger.Error("request timeout or cancelled", ctx.Err())
		} else {
			g.logger.Error("post request", err)
		}
		return nil, entity.NewGatewayError(entity.StageTransport, "payment processing error")
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			g.logger.Error("close response body", err)
		}
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		g.logger.Error("read response body", err)
		return nil, entity.NewGatewayError(entity.StageTransport, "payment processing error")
	}

	result, err := parseGatewayResponse(body)
	if err != nil {
		g.logger.Warn(fmt.Sprintf("unrecognized response: %s", string(body)))
		return nil, entity.NewGatewayError(entity.StageProtocol, "failed to parse processor response")
	}
	g.logger.Debug(fmt.Sprintf("response: root %s; code %s", result.XMLName.Local, result.ResponseCode))
	return result, nil
}

// parseGatewayResponse normalizes the two observed reply shapes into
// one struct. The processor answers with either an mwResponse or a
// Response root; anything else is a protocol failure.
func parseGatewayResponse(body []byte) (*entity.GatewayResponse, error) {
	var response entity.GatewayResponse
	if err := xml.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("parse response: %v", err)
	}
	switch strings.ToLower(response.XMLName.Local) {
	case "mwresponse", "response":
		return &response, nil
	default:
		return nil, fmt.Errorf("unexpected response root %q", response.XMLName.Local)
	}
}
