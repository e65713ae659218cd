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

// Package api provides integration test utilities for TheCatAPI.
//
// # Targets
//
// The suites run against either an in-process fake (the default) or the
// live service, selected with CATAPI_TARGET.  The fake needs no network or
// account and is seeded so runs are repeatable.  A live run needs an API
// key in THE_CAT_API_KEY and refuses to start without one.
//
// # Contract Checking
//
// Every response is checked against the OpenAPI document in test_data, both
// its shape, via schema.MatchSchema, and where errors are concerned its
// text, which the document carries as the response description.  A change
// to the API must therefore come with a change to the document.
//
// # Artifacts
//
// Requests and responses are attached to the running spec, and written to
// ARTIFACT_DIR when set, so a failure can be diagnosed after the fact.
package api
