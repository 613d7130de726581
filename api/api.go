package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rise-summit/event-registration/registration"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "LOCAL":
		return LOCAL, nil
	case "PROD":
		return PROD, nil
	default:
		return LOCAL, fmt.Errorf("unknown environment: %q", s)
	}
}

type DB interface {
	registration.Repository
}

type API struct {
	db       DB
	logger   *slog.Logger
	env      Environment
	checkout registration.CheckoutManager
}

func NewAPI(db DB, logger *slog.Logger, env Environment, checkout registration.CheckoutManager) *API {
	return &API{
		db:       db,
		logger:   logger,
		env:      env,
		checkout: checkout,
	}
}

func (a *API) Handler() http.Handler {
	r := http.NewServeMux()

	r.HandleFunc("POST /payment/initiate", a.initiatePayment)
	r.HandleFunc("GET /payment/callback", a.paymentCallback)
	r.HandleFunc("GET /registrations/export", a.exportRegistrations)

	return useMiddlewares(r,
		a.requestIdMiddleware(),
		a.loggingMiddleware(),
		a.corsMiddleware(),
	)
}
