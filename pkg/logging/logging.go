/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging wires controller-runtime's logr facade to a zap backend
// and hands out named loggers.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	crlog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var ErrLevel = errors.New("invalid log level")

// Options control the global logger.
type Options struct {
	// Level is a zap level name e.g. debug, info, error.
	Level string
	// Development enables human readable console output.
	Development bool
	// Writer is where log lines go, defaults to stderr.
	Writer io.Writer
}

// AddFlags registers logging flags with the given flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Level, "log-level", "info", "Minimum log level (debug, info, warn, error).")
	f.BoolVar(&o.Development, "log-development", false, "Use human readable development logging.")
}

// Build returns a logger for the options without installing it.
func (o *Options) Build() (logr.Logger, error) {
	level := zapcore.InfoLevel

	if o.Level != "" {
		l, err := zapcore.ParseLevel(o.Level)
		if err != nil {
			return logr.Discard(), fmt.Errorf("%w: %q", ErrLevel, o.Level)
		}

		level = l
	}

	writer := o.Writer
	if writer == nil {
		writer = os.Stderr
	}

	return zap.New(zap.WriteTo(writer), zap.UseDevMode(o.Development), zap.Level(level)), nil
}

// Setup installs the global logger, everything derived from New or
// log.FromContext after this call writes through it.
func (o *Options) Setup() error {
	logger, err := o.Build()
	if err != nil {
		return err
	}

	crlog.SetLogger(logger)

	return nil
}

// New returns a named logger derived from the global one.
func New(name string) logr.Logger {
	return crlog.Log.WithName(name)
}
