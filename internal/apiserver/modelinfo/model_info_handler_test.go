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

// The file contains unit tests for the model metadata handler.
package modelinfo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
)

type stubDescriber struct {
	info *sagemaker.EndpointMetadata
}

func (s stubDescriber) Describe(_ context.Context) *sagemaker.EndpointMetadata {
	return s.info
}

func TestModelInfoHandler(t *testing.T) {
	instanceType := "ml.m5.xlarge"

	tests := []struct {
		name     string
		info     *sagemaker.EndpointMetadata
		expected map[string]any
	}{
		{
			name: "full metadata for a reachable endpoint",
			info: &sagemaker.EndpointMetadata{
				ModelName:    "distilbert-base-uncased-distilled-squad",
				ModelType:    "Hugging Face Question-Answering",
				ModelID:      "distilbert-base-uncased-distilled-squad",
				EndpointName: "qa-endpoint",
				EndpointArn:  "arn:aws:sagemaker:eu-north-1:123456789012:endpoint/qa-endpoint",
				Region:       "eu-north-1",
				Status:       "InService",
				InstanceType: &instanceType,
			},
			expected: map[string]any{
				"model_name":    "distilbert-base-uncased-distilled-squad",
				"endpoint_name": "qa-endpoint",
				"status":        "InService",
				"instance_type": "ml.m5.xlarge",
			},
		},
		{
			name: "degraded metadata when the endpoint cannot be described",
			info: &sagemaker.EndpointMetadata{
				ModelName: "distilbert-base-uncased-distilled-squad",
				Region:    "eu-north-1",
				Error:     "SageMaker endpoint not configured",
			},
			expected: map[string]any{
				"model_name": "distilbert-base-uncased-distilled-squad",
				"region":     "eu-north-1",
				"error":      "SageMaker endpoint not configured",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			handler := NewModelInfoApiHandler(stubDescriber{info: tt.info})
			common.RegisterHandler(mux, handler)

			req := httptest.NewRequest(http.MethodGet, ModelInfoPath, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			for key, want := range tt.expected {
				if got := body[key]; got != want {
					t.Errorf("field %q: expected %v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestModelInfoDegradedOmitsEndpointFields(t *testing.T) {
	mux := http.NewServeMux()
	handler := NewModelInfoApiHandler(stubDescriber{info: &sagemaker.EndpointMetadata{
		ModelName: "distilbert-base-uncased-distilled-squad",
		Region:    "eu-north-1",
		Error:     "describe failed",
	}})
	common.RegisterHandler(mux, handler)

	req := httptest.NewRequest(http.MethodGet, ModelInfoPath, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"endpoint_name", "endpoint_arn", "status", "instance_type"} {
		if _, ok := body[key]; ok {
			t.Errorf("degraded metadata should omit %q", key)
		}
	}
}

func TestModelInfoMethodNotAllowed(t *testing.T) {
	mux := http.NewServeMux()
	handler := NewModelInfoApiHandler(stubDescriber{info: &sagemaker.EndpointMetadata{}})
	common.RegisterHandler(mux, handler)

	req := httptest.NewRequest(http.MethodPost, ModelInfoPath, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}
