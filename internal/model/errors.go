package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by the store when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned by the store when a write breaks a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrReferenced is returned by the store when a delete is blocked by a foreign key.
var ErrReferenced = errors.New("referenced by another row")

// Violation is the client-facing description of a rejected request.
type Violation struct {
	ParamNames []string `json:"paramNames,omitempty"`
	Message    string   `json:"message"`
}

// Violator is implemented by every error that maps onto a single violation.
type Violator interface {
	error
	Violation() Violation
}

// NotFoundError reports a missing resource. Param is "id" when the id came from a
// reference field of the payload and empty when it came from the request path.
type NotFoundError struct {
	Kind  Kind
	ID    string
	Param string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID = <%s> not found!", e.Kind, e.ID)
}

func (e NotFoundError) Violation() Violation {
	v := Violation{Message: e.Error()}
	if e.Param != "" {
		v.ParamNames = []string{e.Param}
	}
	return v
}

// NewNotFoundError constructs the path-id variant.
func NewNotFoundError(kind Kind, id string) NotFoundError {
	return NotFoundError{Kind: kind, ID: id}
}

// NewReferenceNotFoundError constructs the variant raised for a foreign reference.
func NewReferenceNotFoundError(kind Kind, id string) NotFoundError {
	return NotFoundError{Kind: kind, ID: id, Param: "id"}
}

// IsNotFoundError checks if an error is a NotFoundError (including wrapped errors)
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// InvalidParameterError reports a null mandatory field or a malformed value.
type InvalidParameterError struct {
	Field string
}

func (e InvalidParameterError) Error() string { return "Invalid param value!" }

func (e InvalidParameterError) Violation() Violation {
	v := Violation{Message: e.Error()}
	if e.Field != "" {
		v.ParamNames = []string{e.Field}
	}
	return v
}

func NewInvalidParameterError(field string) InvalidParameterError {
	return InvalidParameterError{Field: field}
}

func IsInvalidParameterError(err error) bool {
	var ie InvalidParameterError
	return errors.As(err, &ie)
}

// DuplicateError reports a natural key collision. Params, Labels and Values are parallel.
type DuplicateError struct {
	Kind   Kind
	Params []string
	Labels []string
	Values []string
}

func (e DuplicateError) Error() string {
	parts := make([]string, len(e.Labels))
	for i, label := range e.Labels {
		parts[i] = fmt.Sprintf("%s <%s>", label, e.Values[i])
	}
	var joined string
	switch n := len(parts); n {
	case 0:
	case 1:
		joined = parts[0]
	default:
		joined = strings.Join(parts[:n-1], " ") + " and " + parts[n-1]
	}
	return fmt.Sprintf("%s with %s already exists!", e.Kind, joined)
}

func (e DuplicateError) Violation() Violation {
	return Violation{ParamNames: append([]string(nil), e.Params...), Message: e.Error()}
}

func IsDuplicateError(err error) bool {
	var de DuplicateError
	return errors.As(err, &de)
}
