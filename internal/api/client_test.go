package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUnauthorizedSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	_, err := c.ListOrders(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("401 should map to ErrUnauthorized, got %v", err)
	}
}

func TestSessionCookieAttached(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			gotCookie = cookie.Value
		}
		io.WriteString(w, `{"orders":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api").WithSession("tok-123")
	if _, err := c.ListOrders(context.Background()); err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if gotCookie != "tok-123" {
		t.Errorf("session cookie = %q, want tok-123", gotCookie)
	}
}

func TestWithSessionDoesNotMutateOriginal(t *testing.T) {
	c := NewClient("http://example/api")
	bound := c.WithSession("tok")
	if c.session != "" || bound.session != "tok" {
		t.Error("WithSession must copy, not mutate")
	}
}

func TestLoginCapturesSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/google" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["credential"] != "id-token" {
			t.Errorf("credential = %q", payload["credential"])
		}
		http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "remote-session"})
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	session, err := c.GoogleAuth(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("google auth: %v", err)
	}
	if session != "remote-session" {
		t.Errorf("session = %q, want remote-session", session)
	}
}

func TestLoginWithoutCookieFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL + "/api").Login(context.Background(), "a@b.c", "pw"); err == nil {
		t.Error("login without a session cookie should fail")
	}
}

func TestErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"stock cannot be negative"}`)
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/api").DeleteProduct(context.Background(), 9)
	if err == nil || err.Error() == "" {
		t.Fatal("expected an error")
	}
	if got := err.Error(); !strings.Contains(got, "stock cannot be negative") {
		t.Errorf("backend message not surfaced: %q", got)
	}
}

func TestUpdateOrderMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/7" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("payment_status"); got != "Requested" {
			t.Errorf("payment_status = %q", got)
		}
		if got := r.FormValue("custom_message"); got != "please pay" {
			t.Errorf("custom_message = %q", got)
		}
		file, header, err := r.FormFile("invoice")
		if err != nil {
			t.Fatalf("invoice missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "invoice.pdf" {
			t.Errorf("invoice name = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "%PDF-stub" {
			t.Errorf("invoice body = %q", data)
		}
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/api")
	err := c.UpdateOrder(context.Background(), 7, OrderUpdate{
		PaymentStatus: "Requested",
		CustomMessage: "please pay",
		InvoiceName:   "invoice.pdf",
		Invoice:       strings.NewReader("%PDF-stub"),
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}
}

func TestLogoutHitsRootRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	if err := NewClient(srv.URL + "/api").Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if gotPath != "/logout" {
		t.Errorf("logout path = %q, want /logout", gotPath)
	}
}
