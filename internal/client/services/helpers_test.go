package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/session"
	"github.com/dmitrijs2005/etimsclient/internal/client/storage"
)

// ---- helpers ----

type backend struct {
	mux    *http.ServeMux
	srv    *httptest.Server
	store  *storage.MemoryStore
	client *api.Client
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{mux: http.NewServeMux(), store: storage.NewMemoryStore()}
	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	b.client = api.New(session.New(b.store), api.Options{BaseURL: b.srv.URL, Timeout: 2 * time.Second})
	return b
}

func (b *backend) json(pattern string, status int, body string) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *backend) handle(pattern string, fn func(w http.ResponseWriter, r *http.Request)) {
	b.mux.HandleFunc(pattern, fn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
