// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment through the `env` and
// `envPrefix` tags of [StructuredConfig].
func parseEnv(cfg any) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom reads variables from environ instead of the process
// environment. Every variable that fails to parse is reported by its
// environment name, not only the first one.
func parseEnvFrom(cfg any, environ map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{Environment: environ})
	if err == nil {
		return nil
	}

	keys := make(map[string][]string)
	envKeys(reflect.TypeOf(cfg), "", keys)

	return fmt.Errorf("error getting env configs: %w", errors.Join(describeEnvErrors(err, keys)...))
}

// describeEnvErrors flattens nested aggregate errors and prefixes every
// parse error with the variables of the failing field.
func describeEnvErrors(err error, keys map[string][]string) []error {
	var nested []error
	switch e := err.(type) {
	case env.AggregateError:
		nested = e.Errors
	case *env.AggregateError:
		nested = e.Errors
	}
	if nested != nil {
		out := make([]error, 0, len(nested))
		for _, n := range nested {
			out = append(out, describeEnvErrors(n, keys)...)
		}
		return out
	}

	var parseErr env.ParseError
	if errors.As(err, &parseErr) && parseErr.Type != nil {
		if names := keys[fieldKey(parseErr.Name, parseErr.Type)]; len(names) > 0 {
			return []error{fmt.Errorf("%s: %w", strings.Join(names, " or "), err)}
		}
	}

	return []error{err}
}

// envKeys maps every tagged field of t, by name and type, to the full
// environment variable names it is read from.
func envKeys(t reflect.Type, prefix string, out map[string][]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := range t.NumField() {
		field := t.Field(i)
		if p, ok := field.Tag.Lookup("envPrefix"); ok {
			envKeys(field.Type, prefix+p, out)
			continue
		}
		tag, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			continue
		}
		key := fieldKey(field.Name, field.Type)
		out[key] = append(out[key], prefix+name)
	}
}

func fieldKey(name string, t reflect.Type) string {
	return name + "|" + t.String()
}
