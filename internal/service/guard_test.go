package service

import (
	"errors"
	"testing"
)

func TestAuthorizeOwner(t *testing.T) {
	if err := authorizeOwner(7, 7); err != nil {
		t.Fatalf("owner must pass: %v", err)
	}
	if err := authorizeOwner(7, 8); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden got %v", err)
	}
}
