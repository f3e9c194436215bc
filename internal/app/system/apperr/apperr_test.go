package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
)

func TestKindOf(t *testing.T) {
	err := apperr.E(apperr.NotFound, "user not found")
	if got := apperr.KindOf(err); got != apperr.NotFound {
		t.Errorf("KindOf = %q, want %q", got, apperr.NotFound)
	}

	plain := errors.New("boom")
	if got := apperr.KindOf(plain); got != apperr.Internal {
		t.Errorf("KindOf(plain) = %q, want %q", got, apperr.Internal)
	}
}

func TestWrap_PreservesExistingKind(t *testing.T) {
	inner := apperr.E(apperr.AlreadyExists, "duplicate email")
	wrapped := apperr.Wrap(inner, "adding user")

	if got := apperr.KindOf(wrapped); got != apperr.AlreadyExists {
		t.Errorf("KindOf = %q, want %q (domain errors must not be recast)", got, apperr.AlreadyExists)
	}
}

func TestWrap_ClassifiesUnknownErrors(t *testing.T) {
	inner := errors.New("connection refused")
	wrapped := apperr.Wrap(inner, "listing users")

	if got := apperr.KindOf(wrapped); got != apperr.Internal {
		t.Errorf("KindOf = %q, want %q", got, apperr.Internal)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestWrap_Nil(t *testing.T) {
	if apperr.Wrap(nil, "noop") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Unauthorized, http.StatusUnauthorized},
		{apperr.Forbidden, http.StatusForbidden},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.AlreadyExists, http.StatusConflict},
		{apperr.AlreadyActivated, http.StatusConflict},
		{apperr.AlreadyRegistered, http.StatusConflict},
		{apperr.InvalidState, http.StatusConflict},
		{apperr.InvalidArgument, http.StatusBadRequest},
		{apperr.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := apperr.HTTPStatus(tt.kind); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	err := apperr.Errorf(apperr.AlreadyExists, "user with college_id %s already exists", "CS101")
	want := "user with college_id CS101 already exists"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrapChain(t *testing.T) {
	root := fmt.Errorf("dial tcp: timeout")
	err := apperr.Wrap(root, "ping")
	if !errors.Is(err, root) {
		t.Error("expected errors.Is to find the root cause")
	}
}
