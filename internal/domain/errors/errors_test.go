package errors_test

import (
	"errors"
	"strings"
	"testing"

	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
)

func TestIntegrityErrorMatchesSentinel(t *testing.T) {
	err := domainerr.Integrity("export.yaml", "show-1", domainerr.ErrDanglingReference, "article 2001-01-01-x")
	if !errors.Is(err, domainerr.ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"export.yaml", "show-1", "2001-01-01-x"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not mention %q", msg, want)
		}
	}
}

func TestWithSourceOnlyFillsMissingSource(t *testing.T) {
	err := domainerr.Integrity("", "x", domainerr.ErrBadArticleID, "")
	err = domainerr.WithSource(err, "toc.xhtml")
	if !strings.HasPrefix(err.Error(), "toc.xhtml: x: ") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	err = domainerr.WithSource(err, "other.xhtml")
	if strings.Contains(err.Error(), "other.xhtml") {
		t.Fatalf("source overwritten: %q", err.Error())
	}

	plain := errors.New("boom")
	if domainerr.WithSource(plain, "x") != plain {
		t.Fatal("expected non-integrity errors to pass through")
	}
}

func TestValidationErrorIsInvalid(t *testing.T) {
	var ve domainerr.ValidationError
	if ve.HasAny() {
		t.Fatal("expected empty validation error")
	}
	ve.Add("paths.bigbook_dir", "must not be empty")
	if !errors.Is(ve, domainerr.ErrInvalid) {
		t.Fatal("expected errors.Is(ErrInvalid)")
	}
	if !strings.Contains(ve.Error(), "paths.bigbook_dir: must not be empty") {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}
