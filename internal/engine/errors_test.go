package engine

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"validation", Errorf(ErrValidation, "bad input"), ErrValidation},
		{"not found", Errorf(ErrNotFound, "missing"), ErrNotFound},
		{"conflict", Errorf(ErrConflict, "busy"), ErrConflict},
		{"payload too large", Errorf(ErrPayloadTooLarge, "huge"), ErrPayloadTooLarge},
		{"unclassified counts as internal", errors.New("plain"), ErrInternal},
		{"kind survives fmt wrapping", fmt.Errorf("outer: %w", Errorf(ErrNotFound, "inner")), ErrNotFound},
		{"kind survives WrapErr", WrapErr(ErrUpstream, errors.New("io"), "fetch"), ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("context: %w", Errorf(ErrConflict, "slot busy"))
	if !IsKind(err, ErrConflict) {
		t.Error("expected ErrConflict in chain")
	}
	if IsKind(err, ErrNotFound) {
		t.Error("did not expect ErrNotFound")
	}
	if IsKind(errors.New("plain"), ErrInternal) {
		t.Error("unclassified errors should not match any kind")
	}
}

func TestWrapErrNilCause(t *testing.T) {
	if err := WrapErr(ErrUpstream, nil, "noop"); err != nil {
		t.Errorf("expected nil for nil cause, got %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(ErrValidation, "maxChars must be positive, got %d", -1)
	want := "validation: maxChars must be positive, got -1"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	wrapped := WrapErr(ErrUpstream, errors.New("dial tcp: refused"), "list caption tracks")
	if wrapped.Error() != "upstream: list caption tracks: dial tcp: refused" {
		t.Errorf("got %q", wrapped.Error())
	}
}
