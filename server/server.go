package server

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/fx"

	"github.com/jcrbcn/rss2bsky/shared"
)

// NewHTTPServer provides the ops endpoint (metrics, health). It only
// listens when a metrics port is configured; the bot itself needs no
// inbound HTTP.
func NewHTTPServer(cfg *shared.Config, logger shared.ILogger, lc fx.Lifecycle, router *mux.Router) *http.Server {
	addStr := ":" + strconv.FormatUint(uint64(cfg.MetricsPort), 10)
	srv := &http.Server{Addr: addStr, Handler: router}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.MetricsPort == 0 {
				logger.Printf("No metrics port configured; not starting ops HTTP server")
				return nil
			}
			listener, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Printf("Starting ops HTTP server at %v\n", srv.Addr)
			go srv.Serve(listener)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cfg.MetricsPort == 0 {
				return nil
			}
			logger.Printf("Shutting down ops HTTP server")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}

func NewMux(groups []IHandlerGroup, logger shared.ILogger) *mux.Router {
	r := mux.NewRouter()
	for _, group := range groups {
		mw := group.AuthMW()
		for _, def := range group.GroupDefs() {
			r.Handle(def.pattern, mw(http.HandlerFunc(def.handler))).Methods(def.method)
		}
	}
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) { handleFallback(logger, w, r) })
	return r
}

func handleFallback(logger shared.ILogger, w http.ResponseWriter, r *http.Request) {
	logger.Infof("404 %s request: %s", r.Method, r.URL.Path)
	http.Error(w, notFoundStr, http.StatusNotFound)
}
