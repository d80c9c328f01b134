// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user and book input before it reaches the
// services. A validator can be limited to a subset of fields, which lets
// update requests be checked only on the fields they actually carry.
package validators

import "context"

// Validator validates a request value. When fields are given, only those
// fields are checked; otherwise every rule applies.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
