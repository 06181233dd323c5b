package issuer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	i := New(srv.URL)
	outcome := i.Issue(context.Background(), Spec{Name: "root", Path: "/"})

	if !outcome.Success {
		t.Errorf("Success = false, want true; error=%q", outcome.Error)
	}
	if outcome.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", outcome.StatusCode)
	}
	if outcome.ResponseTime <= 0 {
		t.Error("ResponseTime should be positive")
	}
}

func TestIssueFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	i := New(srv.URL)
	outcome := i.Issue(context.Background(), Spec{Path: "/"})

	if outcome.Success {
		t.Error("Success = true, want false for a 500 response")
	}
	if outcome.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", outcome.StatusCode)
	}
	if outcome.Error == "" {
		t.Error("expected a non-empty Error for an unsuccessful outcome")
	}
}

func TestIssueConnectionRefused(t *testing.T) {
	i := New("http://127.0.0.1:1")
	outcome := i.Issue(context.Background(), Spec{Path: "/"})

	if outcome.Success {
		t.Error("Success = true, want false for a connection error")
	}
	if outcome.Error == "" {
		t.Error("expected a transport error message")
	}
}

func TestIssueRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	i := New(srv.URL)
	outcome := i.Issue(context.Background(), Spec{Path: "/old"})

	if !outcome.Redirected {
		t.Error("Redirected = false, want true")
	}
	if outcome.FinalURL != srv.URL+"/new" {
		t.Errorf("FinalURL = %q, want %q", outcome.FinalURL, srv.URL+"/new")
	}
}

func TestWithSuccessPredicateOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	i := New(srv.URL).WithSuccessPredicate(func(resp *http.Response) bool {
		return resp.StatusCode == http.StatusNotFound
	})
	outcome := i.Issue(context.Background(), Spec{Path: "/"})

	if !outcome.Success {
		t.Error("custom predicate should treat 404 as success")
	}
}

func TestWithTimeoutAppliesToClient(t *testing.T) {
	i := New("http://example.invalid").WithTimeout(5 * time.Millisecond)
	if i.Client.Timeout != 5*time.Millisecond {
		t.Errorf("Client.Timeout = %v, want 5ms", i.Client.Timeout)
	}
}
