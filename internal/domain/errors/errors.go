package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

// Integrity failures. A build that hits one of these produces no index.
var (
	ErrDanglingReference = errors.New("narration references an unknown article")
	ErrBadArchiveURL     = errors.New("archive URL does not start with " + ArchiveDetailsPrefix)
	ErrBadArticleID      = errors.New("article id does not start with a YYYY-MM-DD date")
	ErrEmptySortingKey   = errors.New("title has no sortable characters")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDuplicateIntro    = errors.New("more than one archive introduction in a month")
	ErrMissingField      = errors.New("missing required field")
)

// ArchiveDetailsPrefix is the only accepted form of a show's archive page URL.
const ArchiveDetailsPrefix = "https://archive.org/details/"

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// IntegrityError reports which source file and record broke an index build.
type IntegrityError struct {
	Source string // file the record came from
	Record string // show id, article id or TOC href
	Err    error
}

func (e *IntegrityError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	if e.Record != "" {
		b.WriteString(e.Record)
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("integrity error")
	}
	return b.String()
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// Integrity builds an IntegrityError; detail, when non-empty, is appended to err.
func Integrity(source, record string, err error, detail string) error {
	if detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return &IntegrityError{Source: source, Record: record, Err: err}
}

// WithSource fills in the source file of an IntegrityError that lacks one.
func WithSource(err error, source string) error {
	var ie *IntegrityError
	if errors.As(err, &ie) && ie.Source == "" {
		cp := *ie
		cp.Source = source
		return &cp
	}
	return err
}
