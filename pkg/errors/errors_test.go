package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidOp, "unknown conversion %q", "sepia")
	if err.Code != ErrCodeInvalidOp {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidOp)
	}
	if err.Message != `unknown conversion "sepia"` {
		t.Errorf("Message = %q", err.Message)
	}
	want := `INVALID_OP: unknown conversion "sepia"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := Wrap(ErrCodeInvalidRecipe, cause, "parse %s", "chain.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUnknownInput, "layer references %q", "ghost")

	if !Is(err, ErrCodeUnknownInput) {
		t.Error("Is = false for matching code")
	}
	if Is(err, ErrCodeInvalidOp) {
		t.Error("Is = true for different code")
	}
	if Is(stderrors.New("plain"), ErrCodeUnknownInput) {
		t.Error("Is = true for non-Error")
	}

	// Code must survive an extra wrapping layer.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeUnknownInput) {
		t.Error("Is = false after fmt.Errorf wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeFileNotFound, "missing")); got != ErrCodeFileNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeFileNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q for non-Error, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported format %q", "webp")
	if got := UserMessage(err); got != `unsupported format "webp"` {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}
