// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrInvalidJSON is reported when a request body cannot be decoded.
var ErrInvalidJSON = errors.New("invalid JSON was passed")
