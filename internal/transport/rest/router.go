package rest

import "net/http"

// NewRouter mounts all REST endpoints on a ServeMux. Lookup collections are
// keyed by their URL path segment ("directors", "genres", ...).
func NewRouter(lookups map[string]*LookupHandler, records *RecordHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	for path, h := range lookups {
		mux.HandleFunc("GET /"+path, h.List)
		mux.HandleFunc("POST /"+path, h.Create)
		mux.HandleFunc("GET /"+path+"/stats", h.Stats)
		mux.HandleFunc("GET /"+path+"/{id}", h.Get)
		mux.HandleFunc("PUT /"+path+"/{id}", h.Update)
		mux.HandleFunc("DELETE /"+path+"/{id}", h.Delete)
	}

	mux.HandleFunc("GET /records", records.List)
	mux.HandleFunc("POST /records", records.Create)
	mux.HandleFunc("GET /records/{id}", records.Get)
	mux.HandleFunc("PUT /records/{id}", records.Update)
	mux.HandleFunc("DELETE /records/{id}", records.Delete)

	return mux
}
