/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads meshradar service configuration from JSON or YAML files
// with environment overrides and struct-tag validation.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/carverauto/meshradar/pkg/logger"
)

var (
	errInvalidConfigPtr = errors.New("config must be a non-nil pointer")
	errValidation       = errors.New("config validation failed")
)

// EnvPrefix prefixes every environment override, e.g. MESHRADAR_LISTEN_ADDR.
const EnvPrefix = "MESHRADAR_"

// ConfigLoader fills dst from some configuration source.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by configs with checks beyond struct tags.
type Validator interface {
	Validate() error
}

// Loader holds the configuration loading dependencies.
type Loader struct {
	file     ConfigLoader
	env      ConfigLoader
	validate *validator.Validate
	logger   logger.Logger
}

// NewLoader initializes a Loader with the file and environment loaders.
// If logger is nil, a stderr logger at warn level is used.
func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = createBasicLogger()
	}

	return &Loader{
		file:     &FileConfigLoader{},
		env:      NewEnvConfigLoader(log, EnvPrefix),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   log,
	}
}

func createBasicLogger() logger.Logger {
	log, err := logger.NewWithWriter(&logger.Config{Level: zerolog.WarnLevel.String()}, os.Stderr)
	if err != nil {
		return logger.NewTestLogger()
	}

	return log
}

// LoadAndValidate reads path (when non-empty), applies environment overrides and validates the result.
func (l *Loader) LoadAndValidate(ctx context.Context, path string, cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errInvalidConfigPtr
	}

	if path != "" {
		if err := l.file.Load(ctx, path, cfg); err != nil {
			return err
		}
	}

	if err := l.env.Load(ctx, path, cfg); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return l.ValidateConfig(cfg)
}

// ValidateConfig runs struct-tag validation, then the Validator hook if cfg implements it.
func (l *Loader) ValidateConfig(cfg interface{}) error {
	if err := l.validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]

			return fmt.Errorf("%w: %s failed on %q", errValidation, fe.Namespace(), fe.Tag())
		}

		return fmt.Errorf("%w: %w", errValidation, err)
	}

	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}

	return v.Validate()
}
