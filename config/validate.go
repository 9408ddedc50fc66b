// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance: thread-safe and caches struct info.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the configuration against its struct tags plus the
// cross-field rules tags cannot express. It returns all problems joined
// into one error so a misconfigured process reports everything at once.
func (c *Config) Validate() error {
	var problems []string

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				problems = append(problems, fmt.Sprintf(
					"%s: failed %q validation (value %v)",
					ve.Namespace(), ve.Tag(), ve.Value()))
			}
		} else {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	if c.Session.Enabled && c.Session.Store == "badger" && c.Session.Path == "" {
		problems = append(problems, "session.path: required for the badger store")
	}
	if c.Logging.Compress && c.Logging.Directory == "" {
		problems = append(problems, "logging.compress: requires logging.directory")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
