// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// errInvalidBody is returned by decodeJSONBody when the request body is not
// a JSON object matching the expected shape.
var errInvalidBody = errors.New("request body is not a valid JSON object")
