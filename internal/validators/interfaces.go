// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of values that cross a trust boundary:
// request bodies arriving over HTTP and records read back from the
// key-value store.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - DecodeStoredUser / DecodeSession: decode a persisted record and reject
//     it unless every required field is present and has the right type.
//
// Rules are expressed as go-playground/validator struct tags on the models
// and on the package's own shape structs.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
