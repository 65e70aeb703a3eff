// Moltscope - Moltbook Social Graph Analytics
// Copyright 2026 Moltscope Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moltlabs/moltscope

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton, with error translation into the API's VALIDATION_ERROR shape.
//
// Example:
//
//	type relatedRequest struct {
//	    Agent string `validate:"required,max=100"`
//	    Limit int    `validate:"min=0,max=100"`
//	}
//
//	if err := validation.Struct(&req); err != nil {
//	    var rve *validation.RequestValidationError
//	    if errors.As(err, &rve) {
//	        apiErr := rve.ToAPIError()
//	        ...
//	    }
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/moltlabs/moltscope/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance. The instance caches
// struct metadata, so sharing it is both safe and faster.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates a struct against its validate tags. On failure it returns
// a *RequestValidationError.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	rve := &RequestValidationError{}
	for _, fe := range verrs {
		rve.fields = append(rve.fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: describe(fe),
		})
	}
	return rve
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// RequestValidationError aggregates the field failures of one validation
// pass.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the individual field failures.
func (e *RequestValidationError) Fields() []FieldError {
	return e.fields
}

// Error implements error with a combined message.
func (e *RequestValidationError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError converts the failure into the response envelope's error shape.
func (e *RequestValidationError) ToAPIError() *models.APIError {
	details := make(map[string]interface{}, len(e.fields))
	for _, f := range e.fields {
		details[strings.ToLower(f.Field)] = f.Message
	}
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: e.Error(),
		Details: details,
	}
}

// describe renders one validator failure as a human-readable message.
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
