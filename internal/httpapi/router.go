package httpapi

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Router builds the gorilla/mux router for this server. Every route except
// the shard endpoint is wrapped in handlers.CompressHandler; the shard
// endpoint does its own gzip negotiation since its body is already
// gzip-compressed once at build time, and double-compressing it would
// waste CPU and corrupt the Content-Encoding contract.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/metrics/shard/{id}", s.shardHandler).Methods(http.MethodGet)
	r.Handle("/health", handlers.CompressHandler(http.HandlerFunc(s.healthHandler))).Methods(http.MethodGet)
	r.Handle("/status", handlers.CompressHandler(http.HandlerFunc(s.statusHandler))).Methods(http.MethodGet)
	r.Handle("/metrics", handlers.CompressHandler(http.HandlerFunc(s.metricsHandler))).Methods(http.MethodGet)

	return r
}
