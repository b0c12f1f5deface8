package server

import (
	"net/http"

	"github.com/jcrbcn/rss2bsky/shared"
)

type healthHandlerGroup struct {
	logger shared.ILogger
}

func NewHealthHandlerGroup(logger shared.ILogger) IHandlerGroup {
	return &healthHandlerGroup{logger: logger}
}

func (hg *healthHandlerGroup) GroupDefs() []handlerDef {
	return []handlerDef{
		{"GET", "/healthz", func(w http.ResponseWriter, r *http.Request) { hg.getHealth(w, r) }},
	}
}

func (hg *healthHandlerGroup) AuthMW() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return emptyMW(next)
	}
}

func (hg *healthHandlerGroup) getHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
