/*
Copyright 2024-2025 the Unikorn Authors.
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

package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/unikorn-cloud/catapi/pkg/constants"
)

var (
	ErrMissingConfiguration = errors.New("missing required configuration")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Target selects what the suites run against.
type Target string

const (
	// TargetFake runs against an in-process fake, no network or account
	// is needed.
	TargetFake Target = "fake"

	// TargetLive runs against the real service.
	TargetLive Target = "live"
)

// Environment variables.
const (
	targetEnv         = "CATAPI_TARGET"
	specPathEnv       = "CATAPI_SPEC_PATH"
	requestTimeoutEnv = "REQUEST_TIMEOUT"
	logLevelEnv       = "LOG_LEVEL"
	logRequestsEnv    = "LOG_REQUESTS"
	logResponsesEnv   = "LOG_RESPONSES"
	artifactDirEnv    = "ARTIFACT_DIR"
)

// defaultSpecPath is relative to the test/api/suites directory.
const defaultSpecPath = "../../../test_data/swagger.yaml"

type TestConfig struct {
	Target         Target
	BaseURL        string
	APIKey         string
	SpecPath       string
	RequestTimeout time.Duration
	LogLevel       string
	LogRequests    bool
	LogResponses   bool
	ArtifactDir    string
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		Target:         Target(getWithDefault(targetEnv, string(TargetFake))),
		BaseURL:        getWithDefault(constants.BaseURLEnv, constants.BaseURL),
		APIKey:         os.Getenv(constants.APIKeyEnv),
		SpecPath:       getWithDefault(specPathEnv, defaultSpecPath),
		RequestTimeout: getDurationWithDefault(requestTimeoutEnv, 30*time.Second),
		LogLevel:       getWithDefault(logLevelEnv, "info"),
		LogRequests:    getBoolWithDefault(logRequestsEnv, true),
		LogResponses:   getBoolWithDefault(logResponsesEnv, true),
		ArtifactDir:    os.Getenv(artifactDirEnv),
	}

	if err := validateRequiredFields(config); err != nil {
		return nil, err
	}

	return config, nil
}

// getWithDefault gets a string from environment variable or returns default.
func getWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that all required configuration values are set.
// Only a live run needs credentials, the fake accepts anything.
func validateRequiredFields(config *TestConfig) error {
	switch config.Target {
	case TargetFake:
		return nil
	case TargetLive:
	default:
		return fmt.Errorf("%w: %s must be one of %q or %q, got %q", ErrInvalidConfiguration, targetEnv, TargetFake, TargetLive, config.Target)
	}

	var missing []string

	required := map[string]string{
		constants.APIKeyEnv: config.APIKey,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}
