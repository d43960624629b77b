package fakestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/jeansstore/backend/pkg/errors"
)

func TestGetUserSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 1,
			"email": "john@gmail.com",
			"username": "johnd",
			"name": {"firstname": "john", "lastname": "doe"},
			"address": {
				"city": "kilcoole",
				"street": "new road",
				"number": 7682,
				"zipcode": "12926-3874",
				"geolocation": {"lat": "-37.3159", "long": "81.1496"}
			},
			"phone": "1-570-236-7033"
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	user, err := client.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "john@gmail.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
	if got := user.FullName(); got != "john doe" {
		t.Fatalf("unexpected full name: %s", got)
	}
	if user.Address.City != "kilcoole" {
		t.Fatalf("unexpected city: %s", user.Address.City)
	}
}

func TestGetUserRejectsNonPositiveID(t *testing.T) {
	client := NewClient()
	_, err := client.GetUser(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetUserUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.GetUser(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
