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

package constants

var (
	// Application is the application name.
	//nolint:gochecknoglobals
	Application = "catapi"

	// Version is the application version set via the Makefile.
	//nolint:gochecknoglobals
	Version string

	// Revision is the git revision set via the Makefile.
	//nolint:gochecknoglobals
	Revision string
)

const (
	// BaseURL is the public TheCatAPI v1 endpoint.
	BaseURL = "https://api.thecatapi.com/v1"

	// APIKeyHeader carries the account key on every authenticated request.
	APIKeyHeader = "x-api-key"

	// APIKeyEnv names the environment variable holding the account key.
	APIKeyEnv = "THE_CAT_API_KEY"

	// BaseURLEnv optionally overrides BaseURL.
	BaseURLEnv = "THE_CAT_API_BASE_URL"

	// MaxSearchLimit is the documented upper bound of the search limit
	// parameter, larger values are clamped by the server.
	MaxSearchLimit = 25
)
