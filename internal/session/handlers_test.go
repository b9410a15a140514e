package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"go-chi-calculator/internal/config"
	httptestutil "go-chi-calculator/internal/testutil"
)

func newTestRouter() (http.Handler, *Store) {
	store := NewStore(config.SessionConfig{MaxSessions: 8, IdleTimeout: time.Minute})
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func createSession(t *testing.T, router http.Handler) Response {
	t.Helper()
	req := httptestutil.JSONRequest(http.MethodPost, "/sessions", "")
	w := httptestutil.ExecuteRequest(req, router)
	httptestutil.RequireStatus(t, w, http.StatusCreated)

	var resp Response
	httptestutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.ID == "" {
		t.Fatal("expected session id")
	}
	if loc := w.Header().Get("Location"); loc != "/sessions/"+resp.ID {
		t.Fatalf("unexpected Location %q", loc)
	}
	return resp
}

func pressKeys(router http.Handler, id, body string) *httptest.ResponseRecorder {
	req := httptestutil.JSONRequest(http.MethodPost, "/sessions/"+id+"/press", body)
	return httptestutil.ExecuteRequest(req, router)
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter()
	created := createSession(t, router)
	if created.Display != "0" {
		t.Fatalf("expected display 0, got %q", created.Display)
	}

	w := pressKeys(router, created.ID, `{"keys":["2","+","3","×","4","="]}`)
	httptestutil.RequireStatus(t, w, http.StatusOK)
	var pressed Response
	httptestutil.DecodeJSONBody(t, w.Body, &pressed)
	if pressed.Display != "20" || pressed.ID != created.ID {
		t.Fatalf("unexpected press response %+v", pressed)
	}

	req := httptestutil.JSONRequest(http.MethodGet, "/sessions/"+created.ID, "")
	w = httptestutil.ExecuteRequest(req, router)
	httptestutil.RequireStatus(t, w, http.StatusOK)
	var got Response
	httptestutil.DecodeJSONBody(t, w.Body, &got)
	if got.Display != "20" {
		t.Fatalf("expected stored display 20, got %q", got.Display)
	}

	req = httptestutil.JSONRequest(http.MethodDelete, "/sessions/"+created.ID, "")
	w = httptestutil.ExecuteRequest(req, router)
	httptestutil.RequireStatus(t, w, http.StatusNoContent)

	req = httptestutil.JSONRequest(http.MethodGet, "/sessions/"+created.ID, "")
	w = httptestutil.ExecuteRequest(req, router)
	httptestutil.RequireStatus(t, w, http.StatusNotFound)
}

func TestSessionPressDivisionByZeroIsState(t *testing.T) {
	router, _ := newTestRouter()
	created := createSession(t, router)

	w := pressKeys(router, created.ID, `{"keys":["5","/","0","="]}`)
	httptestutil.RequireStatus(t, w, http.StatusOK)

	var resp Response
	httptestutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Display != "Error" || resp.Error != "Cannot divide by zero" || resp.ErrorKind != "division_by_zero" {
		t.Fatalf("unexpected error state %+v", resp)
	}
}

func TestSessionPressErrors(t *testing.T) {
	router, _ := newTestRouter()
	created := createSession(t, router)

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "unknown key", id: created.ID, body: `{"keys":["1","sqrt"]}`, wantStatus: http.StatusBadRequest, wantError: `unknown key: "sqrt"`},
		{name: "no keys", id: created.ID, body: `{"keys":[]}`, wantStatus: http.StatusBadRequest, wantError: "no keys provided"},
		{name: "bad body", id: created.ID, body: `{"keys":`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "unknown session", id: "nope", body: `{"keys":["1"]}`, wantStatus: http.StatusNotFound, wantError: "session not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := pressKeys(router, tc.id, tc.body)
			httptestutil.RequireStatus(t, w, tc.wantStatus)

			resp := httptestutil.DecodeError(t, w)
			if resp.Error != tc.wantError {
				t.Fatalf("expected error %q, got %q", tc.wantError, resp.Error)
			}
		})
	}
}

func TestActiveSessionsCollector(t *testing.T) {
	router, store := newTestRouter()
	createSession(t, router)
	createSession(t, router)

	expected := `
# HELP calculator_active_sessions Number of live calculator sessions.
# TYPE calculator_active_sessions gauge
calculator_active_sessions 2
`
	if err := testutil.CollectAndCompare(ActiveSessionsCollector(store), strings.NewReader(expected)); err != nil {
		t.Fatalf("unexpected gauge: %v", err)
	}
}
