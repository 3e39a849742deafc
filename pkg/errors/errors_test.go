package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodePriceUnavailable, http.StatusUnprocessableEntity},
		{CodeBelowMinimumOrder, http.StatusUnprocessableEntity},
		{CodeInvalidTransition, http.StatusUnprocessableEntity},
		{CodeQuoteNotEditable, http.StatusConflict},
		{CodeProductCreation, http.StatusBadGateway},
		{CodeSubEntityCreation, http.StatusBadGateway},
		{CodeRemoteUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(CodeRemoteUnavailable, cause, "create variant")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause in chain")
	}
	if typed := As(fmt.Errorf("outer: %w", err)); typed == nil || typed.Code() != CodeRemoteUnavailable {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	err := New(CodeBelowMinimumOrder, "qty 5 below moq 10")
	if !HasCode(err, CodeBelowMinimumOrder) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(err, CodePriceUnavailable) {
		t.Fatal("unexpected code match")
	}
	if HasCode(errors.New("plain"), CodeInternal) {
		t.Fatal("plain error should not carry a code")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeSubEntityCreation, errors.New("status 500"), "create price tier")
	dump := Dump(err)

	if dump.Code != CodeSubEntityCreation {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
