package memguard

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

// StartDebugHTTP starts a lightweight HTTP server exposing fault-core
// diagnostics:
//
//	GET /zones    -> JSON array of zone snapshots
//	GET /history  -> JSON array of recent location labels
//	                 Query param: n=<count> limits to the newest n
//	GET /platform -> JSON capability report
//
// It returns the bound address (useful with port 0) and a shutdown
// function compatible with http.Server.Shutdown. Inspection only:
// handlers copy state and never mutate the registry.
func StartDebugHTTP(reg *memzone.Registry, rep Reporter, addr string) (string, func(ctx context.Context) error, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(reg.Snapshot())
	})

	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		labels := rep.RecentLocations()
		if nStr := r.URL.Query().Get("n"); nStr != "" {
			n, err := strconv.Atoi(nStr)
			if err != nil || n < 0 {
				http.Error(w, "invalid n", http.StatusBadRequest)
				return
			}
			if n < len(labels) {
				labels = labels[len(labels)-n:]
			}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(labels)
	})

	mux.HandleFunc("/platform", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(Probe())
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() { _ = srv.Serve(ln) }()
	return ln.Addr().String(), srv.Shutdown, nil
}
