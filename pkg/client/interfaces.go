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

package client

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

import (
	"net/http"
)

// Doer performs a single HTTP exchange, *http.Client satisfies this.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
