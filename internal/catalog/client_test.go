package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/amara-labs/zawadi-backend/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClientGetProduct(t *testing.T) {
	const expectedURL = "http://catalog.test/v1/products/prod_123"
	respBody := `{"id":"prod_123","name":"Kiondo basket","origin":"Kenya","category":"baskets","price":"1500","maxQuantity":4,"available":true}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		if req.Method != http.MethodGet {
			t.Fatalf("unexpected method %q", req.Method)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://catalog.test/v1/", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	product, err := client.GetProduct(context.Background(), "prod_123")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if product.Name != "Kiondo basket" {
		t.Fatalf("unexpected name %q", product.Name)
	}
	if !product.Price.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected price %s", product.Price)
	}
	if product.MaxQuantity == nil || *product.MaxQuantity != 4 {
		t.Fatalf("unexpected max quantity %+v", product.MaxQuantity)
	}
	if product.Available == nil || !*product.Available {
		t.Fatalf("expected product to be available")
	}
}

func TestClientGetProductNotFound(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(`{"error":"not found"}`)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://catalog.test/v1", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetProduct(context.Background(), "prod_missing")
	if err == nil {
		t.Fatal("expected an error for a missing product")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientGetProductUpstreamFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("upstream down")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("http://catalog.test/v1", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetProduct(context.Background(), "prod_123")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientGetProductValidation(t *testing.T) {
	client, err := NewClient("http://catalog.test/v1")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetProduct(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected an error for a blank base URL")
	}
}
