package internal

import (
	"context"
	"encoding/json"
	"lodgepay/entity"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPayments returns a canned outcome and keeps the request it saw.
type stubPayments struct {
	outcome *entity.ChargeOutcome
	request *entity.ChargeRequest
}

func (s *stubPayments) SubmitCharge(_ context.Context, request *entity.ChargeRequest) *entity.ChargeOutcome {
	s.request = request
	return s.outcome
}

func newTestServer(payments *stubPayments, database *recordingStore) *Server {
	server := NewServer(testConfig(""))
	server.SetLogger(NewLogger("server", false, nil))
	if payments != nil {
		server.SetPaymentsService(payments)
	}
	if database != nil {
		server.SetDatabase(database)
	}
	return server
}

func serve(server *Server, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	server.httpServer.Handler.ServeHTTP(recorder, request)
	return recorder
}

func TestSubmitPaymentEndpoint(t *testing.T) {
	payments := &stubPayments{outcome: &entity.ChargeOutcome{
		Success: true,
		Data:    &entity.ChargeData{TransactionID: "tx-42", ResponseCode: "0"},
	}}
	server := newTestServer(payments, nil)

	body := `{"amount":"150.00","cardNumber":"4111111111111111","cardName":"Jane Guest","expiryDate":"12/29","cvc":"123"}`
	recorder := serve(server, http.MethodPost, "/payment", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var outcome entity.ChargeOutcome
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &outcome))
	assert.True(t, outcome.Success)
	require.NotNil(t, outcome.Data)
	assert.Equal(t, "tx-42", outcome.Data.TransactionID)

	require.NotNil(t, payments.request)
	assert.Equal(t, "150.00", payments.request.Amount)
	assert.Equal(t, "Jane Guest", payments.request.CardName)
}

func TestSubmitPaymentEndpointFailure(t *testing.T) {
	payments := &stubPayments{outcome: &entity.ChargeOutcome{Error: "invalid card number"}}
	server := newTestServer(payments, nil)

	recorder := serve(server, http.MethodPost, "/payment", `{"amount":"150.00"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var outcome entity.ChargeOutcome
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &outcome))
	assert.False(t, outcome.Success)
	assert.Equal(t, "invalid card number", outcome.Error)
}

func TestSubmitPaymentEndpointBadBody(t *testing.T) {
	server := newTestServer(&stubPayments{}, nil)
	recorder := serve(server, http.MethodPost, "/payment", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBookingTotalEndpoint(t *testing.T) {
	server := newTestServer(nil, nil)

	body := `{"bookingType":"direct","accommodationFee":"200.00","addons":[{"name":"Cot","price":"99"}],"selectedAddons":["Cot"],"earlyCheckInHours":1}`
	recorder := serve(server, http.MethodPost, "/booking/total", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	var reply map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Equal(t, "359.00", reply["total"])
}

func TestBookingTotalEndpointRejectsBreakdown(t *testing.T) {
	server := newTestServer(nil, nil)

	recorder := serve(server, http.MethodPost, "/booking/total", `{"bookingType":"walk-in"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var reply map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Contains(t, reply["error"], "unknown booking type")
}

func TestListAddonsWithoutStorage(t *testing.T) {
	server := newTestServer(nil, nil)

	recorder := serve(server, http.MethodGet, "/addons", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var addons []entity.Addon
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &addons))
	assert.Len(t, addons, len(entity.DefaultAddons()))
}

func TestListAddonsEmptyStoreFallsBack(t *testing.T) {
	server := newTestServer(nil, &recordingStore{})

	recorder := serve(server, http.MethodGet, "/addons", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var addons []entity.Addon
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &addons))
	assert.Len(t, addons, len(entity.DefaultAddons()))
}

func TestAddonLifecycle(t *testing.T) {
	store := &recordingStore{}
	server := newTestServer(nil, store)

	recorder := serve(server, http.MethodPost, "/addons", `{"name":"Breakfast","price":"25.00"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, store.addons, 1)
	assert.True(t, store.addons[0].Price.Equal(decimal.RequireFromString("25.00")))

	recorder = serve(server, http.MethodGet, "/addons", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var addons []entity.Addon
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &addons))
	require.Len(t, addons, 1)
	assert.Equal(t, "Breakfast", addons[0].Name)

	recorder = serve(server, http.MethodDelete, "/addons/Breakfast", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, store.addons)

	recorder = serve(server, http.MethodDelete, "/addons/Breakfast", "")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestSaveAddonRejectsInvalidPayload(t *testing.T) {
	server := newTestServer(nil, &recordingStore{})

	for _, body := range []string{
		`{"price":"25.00"}`,
		`{"name":"Breakfast","price":"-1"}`,
		`not json`,
	} {
		recorder := serve(server, http.MethodPost, "/addons", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
}

func TestAddonWritesWithoutStorage(t *testing.T) {
	server := newTestServer(nil, nil)

	recorder := serve(server, http.MethodPost, "/addons", `{"name":"Breakfast","price":"25.00"}`)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	recorder = serve(server, http.MethodDelete, "/addons/Breakfast", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
