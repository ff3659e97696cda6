package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"lodgepay/config"
	"lodgepay/entity"
	"lodgepay/services"
	"net"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const (
	submitPayment = "/payment"
	bookingTotal  = "/booking/total"
	listAddons    = "/addons"
	saveAddon     = "/addons"
	deleteAddon   = "/addons/:name"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	payments   services.Payments
	database   services.Database
	logger     services.LogHandler
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf: conf,
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(submitPayment, s.submitPayment)
	router.POST(bookingTotal, s.bookingTotal)
	router.GET(listAddons, s.listAddons)
	router.POST(saveAddon, s.saveAddon)
	router.DELETE(deleteAddon, s.deleteAddon)
}

func (s *Server) SetPaymentsService(payments services.Payments) {
	s.payments = payments
}

func (s *Server) SetDatabase(database services.Database) {
	s.database = database
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

// submitPayment is the inbound charge boundary. The body is the
// ChargeRequest JSON; the reply is always a ChargeOutcome, with 200 for
// approvals and 400 for every classified failure.
func (s *Server) submitPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request entity.ChargeRequest
	if err = json.Unmarshal(body, &request); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment: decode request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	outcome := s.payments.SubmitCharge(ctx, &request)
	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, outcome)
}

// bookingTotal prices a fee breakdown without charging anything.
func (s *Server) bookingTotal(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] booking total: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var breakdown entity.FeeBreakdown
	if err = json.Unmarshal(body, &breakdown); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] booking total: decode request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err = ValidateBreakdown(&breakdown); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] booking total: %v", reqID, err))
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	total := ComputeTotal(&breakdown)
	s.writeJSON(w, http.StatusOK, map[string]string{"total": FormatAmount(total)})
}

// listAddons returns the stored addon catalog, or the stock catalog
// when no storage is attached.
func (s *Server) listAddons(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())

	if s.database == nil {
		s.writeJSON(w, http.StatusOK, entity.DefaultAddons())
		return
	}

	addons, err := s.database.GetAddons(ctx)
	if err != nil {
		s.logger.Error("list addons", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(addons) == 0 {
		addons = entity.DefaultAddons()
	}
	s.writeJSON(w, http.StatusOK, addons)
}

func (s *Server) saveAddon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.database == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] save addon: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var addon entity.Addon
	if err = json.Unmarshal(body, &addon); err != nil || addon.Name == "" || addon.Price.IsNegative() {
		s.logger.Warn(fmt.Sprintf("[%s] save addon: invalid payload", reqID))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err = s.database.SaveAddon(ctx, &addon); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] save addon %s", reqID, addon.Name), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) deleteAddon(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if s.database == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	name := ps.ByName("name")
	if name == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.database.DeleteAddon(ctx, name); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] delete addon %s", reqID, name), err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encode response", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		s.logger.Error("write response", err)
	}
}
