package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nsf/jsondiff"
)

func jsonEqual(t *testing.T, got []byte, want string) {
	t.Helper()
	opts := jsondiff.DefaultConsoleOptions()
	diff, desc := jsondiff.Compare(got, []byte(want), &opts)
	if diff != jsondiff.FullMatch {
		t.Errorf("request body mismatch:\n%s", desc)
	}
}

func TestProbeAuthMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/rest/auth/mode" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"mode": "ldap"}`)
	}))
	defer srv.Close()

	mode, err := NewClient(srv.URL).ProbeAuthMode(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if mode != AuthModeLDAP {
		t.Errorf("mode = %q, want ldap", mode)
	}
}

func TestAuthenticateLocalSendsHashOnly(t *testing.T) {
	const hashed = "3d91b58504a6cc3a159005ee7b16c7ae503ca6ac2a6a3c893837083c236b864a"
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/auth/local" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).AuthenticateLocal(context.Background(), hashed); err != nil {
		t.Fatal(err)
	}
	jsonEqual(t, body, fmt.Sprintf(`{"password": %q}`, hashed))
}

func TestAuthenticateLDAPSendsRawCredentials(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/auth/ldap" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).AuthenticateLDAP(context.Background(), "boris", "secret"); err != nil {
		t.Fatal(err)
	}
	jsonEqual(t, body, `{"username": "boris", "password": "secret"}`)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantMessage  string
		wantRejected bool
	}{
		{
			name:         "unauthorized with message",
			status:       http.StatusUnauthorized,
			body:         `{"message": "bad password"}`,
			wantMessage:  "bad password",
			wantRejected: true,
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			body:         `{"message": "account locked"}`,
			wantMessage:  "account locked",
			wantRejected: true,
		},
		{
			name:         "server error with non-json body",
			status:       http.StatusInternalServerError,
			body:         "<html>oops</html>",
			wantMessage:  "",
			wantRejected: false,
		},
		{
			name:         "bad gateway",
			status:       http.StatusBadGateway,
			body:         `{"message": "upstream down"}`,
			wantMessage:  "upstream down",
			wantRejected: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			err := NewClient(srv.URL).AuthenticateLocal(context.Background(), "irrelevant")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %v is not *Error", err)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tc.status)
			}
			if apiErr.Message != tc.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tc.wantMessage)
			}
			if got := IsAuthRejected(err); got != tc.wantRejected {
				t.Errorf("IsAuthRejected = %v, want %v", got, tc.wantRejected)
			}
		})
	}
}

func TestIsAuthRejectedNonAPIError(t *testing.T) {
	if IsAuthRejected(errors.New("dial tcp: connection refused")) {
		t.Error("plain error treated as auth rejection")
	}
	if IsAuthRejected(nil) {
		t.Error("nil error treated as auth rejection")
	}
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status": "degraded"}`)
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL).FetchStatus(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusDegraded {
		t.Errorf("status = %q, want degraded", status)
	}
}

func TestFetchStatusOpenSet(t *testing.T) {
	// States this client does not know pass through verbatim.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "hibernating"}`)
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL).FetchStatus(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status != ServiceStatus("hibernating") {
		t.Errorf("status = %q, want hibernating", status)
	}
}

func TestFetchPreferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/preferences" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"layout": "fluid", "language": "de"}`)
	}))
	defer srv.Close()

	prefs, err := NewClient(srv.URL).FetchPreferences(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := Preferences{Layout: "fluid", Language: "de"}
	if prefs != want {
		t.Errorf("preferences = %+v, want %+v", prefs, want)
	}
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/version" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"version": "1.4.2"}`)
	}))
	defer srv.Close()

	info, err := NewClient(srv.URL).Version(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.4.2" {
		t.Errorf("version = %q, want 1.4.2", info.Version)
	}
}

func TestUserAgentHeader(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"status": "active"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithUserAgent("webctl:test"))
	if _, err := c.FetchStatus(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ua != "webctl:test" {
		t.Errorf("User-Agent = %q, want webctl:test", ua)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status": "active"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	if got := c.BaseURL(); got != srv.URL {
		t.Errorf("BaseURL = %q, want %q", got, srv.URL)
	}
	if _, err := c.FetchStatus(context.Background()); err != nil {
		t.Fatal(err)
	}
}
