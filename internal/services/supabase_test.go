package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupabaseAuth(t *testing.T) {
	t.Run("GetSession", func(t *testing.T) {
		t.Run("No Primed Session", func(t *testing.T) {
			auth := NewSupabaseAuth("https://example.test", "anon", nil)

			session, err := auth.GetSession(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session != nil {
				t.Error("expected nil session when nothing is primed")
			}
		})

		t.Run("Valid Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/v1/user" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token123" {
					t.Errorf("unexpected authorization header %q", got)
				}
				if got := r.Header.Get("apikey"); got != "anon" {
					t.Errorf("unexpected apikey header %q", got)
				}
				json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "admin@example.com"})
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			auth.UseSession(&Session{AccessToken: "token123"})

			session, err := auth.GetSession(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session == nil {
				t.Fatal("expected a session")
			}
			if session.Email != "admin@example.com" || session.UserID != "user-1" {
				t.Errorf("unexpected session: %+v", session)
			}
		})

		t.Run("Rejected Token Is Not An Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			auth.UseSession(&Session{AccessToken: "stale"})

			session, err := auth.GetSession(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if session != nil {
				t.Error("expected nil session for a rejected token")
			}
			if auth.AccessToken() != "" {
				t.Error("rejected session should be dropped")
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"msg": "database on fire"})
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			auth.UseSession(&Session{AccessToken: "token"})

			_, err := auth.GetSession(context.Background())
			if err == nil {
				t.Fatal("expected an error for a 500 response")
			}
			if !strings.Contains(err.Error(), "database on fire") {
				t.Errorf("expected server message in error, got %v", err)
			}
		})
	})

	t.Run("SignInWithLink", func(t *testing.T) {
		t.Run("Posts OTP Request", func(t *testing.T) {
			var captured map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/otp" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				body, _ := io.ReadAll(r.Body)
				json.Unmarshal(body, &captured)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			if err := auth.SignInWithLink(context.Background(), "admin@example.com"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if captured["email"] != "admin@example.com" {
				t.Errorf("unexpected email payload: %v", captured)
			}
			if captured["create_user"] != true {
				t.Error("expected create_user true in payload")
			}
		})

		t.Run("Rate Limited", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"msg": "rate limit exceeded"})
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			err := auth.SignInWithLink(context.Background(), "admin@example.com")
			if err == nil || !strings.Contains(err.Error(), "rate limit exceeded") {
				t.Errorf("expected rate limit error, got %v", err)
			}
		})
	})

	t.Run("VerifyLinkCode", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/v1/verify" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			var payload map[string]any
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			if payload["type"] != "magiclink" {
				t.Errorf("expected magiclink type, got %v", payload["type"])
			}
			if payload["token"] != "123456" {
				t.Errorf("unexpected token payload: %v", payload)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "jwt-abc",
				"refresh_token": "refresh-abc",
				"expires_in":    3600,
				"user":          map[string]string{"id": "user-1", "email": "admin@example.com"},
			})
		}))
		defer server.Close()

		auth := NewSupabaseAuth(server.URL, "anon", nil)
		session, err := auth.VerifyLinkCode(context.Background(), "admin@example.com", "123456")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if session.AccessToken != "jwt-abc" || session.Email != "admin@example.com" {
			t.Errorf("unexpected session: %+v", session)
		}
		if session.ExpiresAt.IsZero() {
			t.Error("expected expiry to be set")
		}
		if auth.AccessToken() != "jwt-abc" {
			t.Error("verified session should become active")
		}
	})

	t.Run("SignOut", func(t *testing.T) {
		t.Run("Revokes Token", func(t *testing.T) {
			var path string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			auth.UseSession(&Session{AccessToken: "token"})

			if err := auth.SignOut(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if path != "/auth/v1/logout" {
				t.Errorf("unexpected path %s", path)
			}
			if auth.AccessToken() != "" {
				t.Error("session should be cleared after sign-out")
			}
		})

		t.Run("Expired Token Still Signs Out", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			auth := NewSupabaseAuth(server.URL, "anon", nil)
			auth.UseSession(&Session{AccessToken: "stale"})

			if err := auth.SignOut(context.Background()); err != nil {
				t.Fatalf("expected no error for an expired token, got %v", err)
			}
			if auth.AccessToken() != "" {
				t.Error("session should be cleared")
			}
		})

		t.Run("Already Signed Out", func(t *testing.T) {
			auth := NewSupabaseAuth("https://example.test", "anon", nil)
			if err := auth.SignOut(context.Background()); err != nil {
				t.Errorf("expected no-op, got %v", err)
			}
		})
	})

	t.Run("SignInWithProvider Unconfigured", func(t *testing.T) {
		auth := NewSupabaseAuth("https://example.test", "anon", nil)
		if _, err := auth.SignInWithProvider(context.Background(), "github"); err == nil {
			t.Error("expected error when no authorizer is configured")
		}
	})
}

func TestSupabaseStorage(t *testing.T) {
	t.Run("Upload", func(t *testing.T) {
		type captured struct {
			path    string
			headers http.Header
			body    []byte
		}
		var got captured

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			got = captured{path: r.URL.EscapedPath(), headers: r.Header.Clone(), body: body}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		storage := NewSupabaseStorage(server.URL, "anon", "lesson-images", nil, nil)
		err := storage.Upload(context.Background(), "Животные/koshka/preview.png", []byte("png-bytes"), true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.HasPrefix(got.path, "/storage/v1/object/lesson-images/") {
			t.Errorf("unexpected request path %s", got.path)
		}
		if strings.Contains(got.path, " ") || !strings.Contains(got.path, "%D0%96") {
			t.Errorf("path segments should be escaped, got %s", got.path)
		}
		if got.headers.Get("x-upsert") != "true" {
			t.Errorf("expected x-upsert true, got %q", got.headers.Get("x-upsert"))
		}
		if got.headers.Get("Cache-Control") != "3600" {
			t.Errorf("expected cache-control 3600, got %q", got.headers.Get("Cache-Control"))
		}
		if got.headers.Get("Content-Type") != "image/png" {
			t.Errorf("expected image/png, got %q", got.headers.Get("Content-Type"))
		}
		if string(got.body) != "png-bytes" {
			t.Error("body should be the raw image bytes")
		}
	})

	t.Run("No Overwrite", func(t *testing.T) {
		var upsert string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			upsert = r.Header.Get("x-upsert")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		storage := NewSupabaseStorage(server.URL, "anon", "lesson-images", nil, nil)
		if err := storage.Upload(context.Background(), "a/b.png", nil, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if upsert != "false" {
			t.Errorf("expected x-upsert false, got %q", upsert)
		}
	})

	t.Run("Session Token Preferred Over Anon Key", func(t *testing.T) {
		var bearer string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearer = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		auth := NewSupabaseAuth(server.URL, "anon", nil)
		auth.UseSession(&Session{AccessToken: "user-jwt"})

		storage := NewSupabaseStorage(server.URL, "anon", "lesson-images", nil, auth)
		if err := storage.Upload(context.Background(), "a/b.png", nil, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bearer != "Bearer user-jwt" {
			t.Errorf("expected session bearer, got %q", bearer)
		}
	})

	t.Run("Failure Surfaces Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "resource already exists"})
		}))
		defer server.Close()

		storage := NewSupabaseStorage(server.URL, "anon", "lesson-images", nil, nil)
		err := storage.Upload(context.Background(), "a/b.png", nil, false)
		if err == nil || !strings.Contains(err.Error(), "resource already exists") {
			t.Errorf("expected conflict message, got %v", err)
		}
	})
}

func TestSupabaseTable(t *testing.T) {
	t.Run("Insert", func(t *testing.T) {
		var path, prefer string
		var payload map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			prefer = r.Header.Get("Prefer")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &payload)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		table := NewSupabaseTable(server.URL, "anon", nil, nil)
		err := table.Insert(context.Background(), "lessons", map[string]string{"slug": "koshka"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if path != "/rest/v1/lessons" {
			t.Errorf("unexpected path %s", path)
		}
		if prefer != "return=minimal" {
			t.Errorf("expected return=minimal, got %q", prefer)
		}
		if payload["slug"] != "koshka" {
			t.Errorf("unexpected payload: %v", payload)
		}
	})

	t.Run("Constraint Violation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "duplicate key value"})
		}))
		defer server.Close()

		table := NewSupabaseTable(server.URL, "anon", nil, nil)
		err := table.Insert(context.Background(), "videos", map[string]string{"id": "dup"})
		if err == nil || !strings.Contains(err.Error(), "duplicate key value") {
			t.Errorf("expected duplicate key message, got %v", err)
		}
	})
}
