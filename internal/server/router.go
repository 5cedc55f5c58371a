package server

import (
	"net/http"
	"time"
)

func Route(repo Repository, now func() time.Time) *http.ServeMux {
	if now == nil {
		now = time.Now
	}
	mux := http.NewServeMux()
	mux.Handle("GET /api/health", NewHealthHandler())
	mux.Handle("GET /api/play/today", NewPlayHandler(now))
	mux.Handle("GET /api/attempts", NewAttemptHandler(repo, now))
	mux.Handle("GET /api/attempts/{client_id}", NewReceiptHandler(repo))
	return mux
}
