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

// The file provides HTTP handlers for the health check and service banner
// endpoints. Health reports process readiness and whether the SageMaker
// endpoint is configured.
package health

import (
	"net/http"
	"time"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
)

const (
	HealthPath = "/health"
	RootPath   = "/{$}"

	serviceVersion = "1.0.0"
)

// ConfigChecker reports whether the backing endpoint is configured.
type ConfigChecker interface {
	IsConfigured() bool
}

type HealthResponse struct {
	Status              string `json:"status"`
	SageMakerConfigured bool   `json:"sagemaker_configured"`
	Timestamp           string `json:"timestamp"`
}

type HealthApiHandler struct {
	checker ConfigChecker
}

func NewHealthApiHandler(checker ConfigChecker) *HealthApiHandler {
	return &HealthApiHandler{checker: checker}
}

func (c *HealthApiHandler) GetRoutes() []common.Route {
	return []common.Route{
		{
			Method:      http.MethodGet,
			Pattern:     HealthPath,
			HandlerFunc: c.HealthHandler,
		},
		{
			Method:      http.MethodHead,
			Pattern:     HealthPath,
			HandlerFunc: c.HealthHandler,
		},
		{
			Method:      http.MethodGet,
			Pattern:     RootPath,
			HandlerFunc: c.RootHandler,
		},
	}
}

func (c *HealthApiHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(r.Context(), w, http.StatusOK, HealthResponse{
		Status:              "healthy",
		SageMakerConfigured: c.checker.IsConfigured(),
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
	})
}

// RootHandler serves the service banner with the endpoint listing.
func (c *HealthApiHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message": "SageMaker Inference Gateway",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"health":        "/health",
			"predict":       "/predict",
			"predict_batch": "/predict/batch",
			"model_info":    "/model/info",
			"metrics":       "/metrics",
		},
	})
}
