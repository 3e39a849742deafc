package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sayeedajmal/saudimart-core/pkg/auth"
	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(
		config.BackendConfig{BaseURL: "https://backend.test/api"},
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func bearerCtx() context.Context {
	return auth.WithBearer(context.Background(), "token-123")
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.BackendConfig{BaseURL: "   "}); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestCreateProductSendsBearerAndDecodesData(t *testing.T) {
	t.Parallel()

	var seen *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(http.StatusCreated,
			`{"data":{"id":"prod-1","sku":"SKU-1","minimum_order_quantity":5},"message":"created"}`), nil
	})

	product, err := client.CreateProduct(bearerCtx(), ProductPayload{SKU: "SKU-1", MOQ: 5, IsActive: true})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.ID != "prod-1" || product.MOQ != 5 {
		t.Fatalf("unexpected product %+v", product)
	}

	if seen.URL.String() != "https://backend.test/api/products" {
		t.Fatalf("unexpected url %s", seen.URL)
	}
	if got := seen.Header.Get("Authorization"); got != "Bearer token-123" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	if got := seen.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestMutationWithoutBearerFailsBeforeIO(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	_, err := client.CreateVariant(context.Background(), VariantPayload{ProductID: "prod-1", SKU: "SKU-1-A"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if called {
		t.Fatal("request must not reach the transport without a credential")
	}
}

func TestStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusBadGateway, pkgerrors.CodeRemoteUnavailable},
	}

	for _, tc := range cases {
		client := newTestClient(t, func(*http.Request) (*http.Response, error) {
			return jsonResponse(tc.status, `{"message":"nope"}`), nil
		})
		_, err := client.GetProduct(bearerCtx(), "prod-1")
		if !pkgerrors.HasCode(err, tc.code) {
			t.Fatalf("status %d: expected %s, got %v", tc.status, tc.code, err)
		}
	}
}

func TestEmbeddedApplicationError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"message":"sku taken","code":"DUPLICATE_SKU","errors":[{"field":"sku","message":"exists"}]}`), nil
	})

	_, err := client.CreateProduct(bearerCtx(), ProductPayload{SKU: "SKU-1"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestTransportFailureIsRemoteUnavailable(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(*http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	_, err := client.GetProduct(bearerCtx(), "prod-1")
	if !pkgerrors.HasCode(err, pkgerrors.CodeRemoteUnavailable) {
		t.Fatalf("expected REMOTE_UNAVAILABLE, got %v", err)
	}
}

func TestGetProductEscapesID(t *testing.T) {
	t.Parallel()

	var seen *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(http.StatusOK, `{"data":{"id":"a/b"}}`), nil
	})

	if _, err := client.GetProduct(bearerCtx(), "a/b"); err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if !strings.HasSuffix(seen.URL.String(), "/products/a%2Fb") {
		t.Fatalf("id not path-escaped: %s", seen.URL)
	}
}

func TestListQuotesBuildsFilterQuery(t *testing.T) {
	t.Parallel()

	var seen *http.Request
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		seen = req
		return jsonResponse(http.StatusOK, `{"data":[{"id":"q-1","status":"sent"}]}`), nil
	})

	quotes, err := client.ListQuotes(bearerCtx(), QuoteFilter{
		BuyerID: "buyer-1",
		Status:  enums.QuoteStatusSent,
	})
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ID != "q-1" {
		t.Fatalf("unexpected quotes %+v", quotes)
	}

	query := seen.URL.Query()
	if query.Get("buyer_id") != "buyer-1" || query.Get("status") != "sent" {
		t.Fatalf("unexpected query %s", seen.URL.RawQuery)
	}
	if query.Has("seller_id") {
		t.Fatal("empty filter fields must be omitted")
	}
}

func TestCreateQuoteRoundTripsDocument(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		var sent catalog.Quote
		if err := json.Unmarshal(raw, &sent); err != nil {
			return nil, err
		}
		sent.ID = "q-9"
		stored, err := json.Marshal(sent)
		if err != nil {
			return nil, err
		}
		return jsonResponse(http.StatusCreated, `{"data":`+string(stored)+`}`), nil
	})

	quote, err := client.CreateQuote(bearerCtx(), catalog.Quote{
		QuoteNumber: "Q-20260831-abc123",
		BuyerID:     "buyer-1",
		SellerID:    "seller-1",
		Status:      enums.QuoteStatusDraft,
		Subtotal:    decimal.RequireFromString("35"),
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	if quote.ID != "q-9" || quote.QuoteNumber != "Q-20260831-abc123" {
		t.Fatalf("unexpected quote %+v", quote)
	}
	if !quote.Subtotal.Equal(decimal.RequireFromString("35")) {
		t.Fatalf("subtotal lost in transit: %s", quote.Subtotal)
	}
}
