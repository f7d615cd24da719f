package blobstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPStorePut(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url": "https://cdn.example.com/shot.png"}`))
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL, "secret-token")
	url, err := store.Put(context.Background(), "session-changes/abc/shot.png", []byte("png bytes"), "image/png")
	if err != nil {
		t.Fatalf("put returned error: %v", err)
	}

	if url != "https://cdn.example.com/shot.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if gotPath != "/session-changes/abc/shot.png" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if string(gotBody) != "png bytes" {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestHTTPStorePutBareURLResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("https://cdn.example.com/bare.png\n"))
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL, "token")
	url, err := store.Put(context.Background(), "media/bare.png", []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("put returned error: %v", err)
	}
	if url != "https://cdn.example.com/bare.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestHTTPStorePutFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL, "token")
	if _, err := store.Put(context.Background(), "media/x.png", []byte("x"), "image/png"); err == nil {
		t.Fatalf("expected error on 403 response")
	}
}

func TestHTTPStoreDelete(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		gotQuery = r.URL.Query().Get("url")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL, "token")
	if err := store.Delete(context.Background(), "https://cdn.example.com/shot.png"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if gotQuery != "https://cdn.example.com/shot.png" {
		t.Fatalf("unexpected url query %q", gotQuery)
	}
}

func TestHTTPStoreDeleteFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL, "token")
	if err := store.Delete(context.Background(), "https://cdn.example.com/x.png"); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}
