/*
Copyright 2026 The SageMaker Gateway Authors

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

// The file provides the JSON response helpers used by all API handlers.
package common

import (
	"context"
	"encoding/json"
	"net/http"

	"k8s.io/klog/v2"
)

// ErrorResponse is the fault body returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON serializes v to the response with the given status code.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.FromContext(ctx).Error(err, "failed to encode response body")
	}
}

// WriteError writes a fault body with a descriptive message.
func WriteError(ctx context.Context, w http.ResponseWriter, status int, detail string) {
	WriteJSON(ctx, w, status, ErrorResponse{Detail: detail})
}
