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

// The file contains unit tests for the prediction handlers.
package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
	"github.com/ml-bridge/sagemaker-gateway/internal/batch"
	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
)

// stubPredictor returns a canned prediction, or the scripted failure for
// request ids listed in failWith.
type stubPredictor struct {
	failWith map[string]*sagemaker.ClientError
}

func (s *stubPredictor) Predict(_ context.Context, req *sagemaker.PredictionRequest) (*sagemaker.PredictionResponse, *sagemaker.ClientError) {
	if cerr, ok := s.failWith[req.RequestID]; ok {
		return nil, cerr
	}
	elapsed := 2.5
	return &sagemaker.PredictionResponse{
		Prediction:       map[string]any{"answer": "Paris", "score": 0.98},
		ModelName:        s.ModelName(),
		RequestID:        req.RequestID,
		Timestamp:        time.Now().UTC(),
		ProcessingTimeMs: &elapsed,
	}, nil
}

func (s *stubPredictor) FailedResponse(requestID string, cerr *sagemaker.ClientError) *sagemaker.PredictionResponse {
	message := cerr.Message
	return &sagemaker.PredictionResponse{
		ModelName: s.ModelName(),
		RequestID: requestID,
		Error:     &message,
		Timestamp: time.Now().UTC(),
	}
}

func (s *stubPredictor) ModelName() string { return "test-model" }

func newTestMux(predictor *stubPredictor) *http.ServeMux {
	mux := http.NewServeMux()
	handler := NewPredictApiHandler(predictor, batch.NewOrchestrator(predictor, 4))
	common.RegisterHandler(mux, handler)
	return mux
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		failWith       map[string]*sagemaker.ClientError
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "successful prediction returns 200",
			body:           `{"data": {"question": "Q?", "context": "C"}, "request_id": "ok-1"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name: "input error returns 400",
			body: `{"data": 1, "request_id": "bad-input"}`,
			failWith: map[string]*sagemaker.ClientError{
				"bad-input": {Category: sagemaker.ErrCategoryInput, Message: "cannot encode payload"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Prediction failed: cannot encode payload",
		},
		{
			name: "unconfigured endpoint returns 503",
			body: `{"data": "x", "request_id": "no-endpoint"}`,
			failWith: map[string]*sagemaker.ClientError{
				"no-endpoint": {Category: sagemaker.ErrCategoryNotConfigured, Message: "no endpoint configured"},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedDetail: "Prediction failed: no endpoint configured",
		},
		{
			name: "invocation error returns 502",
			body: `{"data": "x", "request_id": "remote-down"}`,
			failWith: map[string]*sagemaker.ClientError{
				"remote-down": {Category: sagemaker.ErrCategoryInvocation, Message: "endpoint unreachable"},
			},
			expectedStatus: http.StatusBadGateway,
			expectedDetail: "Prediction failed: endpoint unreachable",
		},
		{
			name: "projection error returns 502",
			body: `{"data": "x", "request_id": "bad-reply"}`,
			failWith: map[string]*sagemaker.ClientError{
				"bad-reply": {Category: sagemaker.ErrCategoryProjection, Message: "unexpected response shape"},
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "malformed body returns 400",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubPredictor{failWith: tt.failWith})

			req := httptest.NewRequest(http.MethodPost, PredictPath, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var resp sagemaker.PredictionResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Error != nil {
					t.Errorf("expected no error, got %q", *resp.Error)
				}
				if resp.Prediction == nil {
					t.Error("expected a prediction in the response")
				}
				if resp.ModelName != "test-model" {
					t.Errorf("expected model name %q, got %q", "test-model", resp.ModelName)
				}
				return
			}

			if tt.expectedDetail != "" {
				var fault common.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &fault); err != nil {
					t.Fatalf("failed to decode fault body: %v", err)
				}
				if fault.Detail != tt.expectedDetail {
					t.Errorf("expected detail %q, got %q", tt.expectedDetail, fault.Detail)
				}
			}
		})
	}
}

func TestPredictMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&stubPredictor{})

	req := httptest.NewRequest(http.MethodGet, PredictPath, nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestPredictBatch(t *testing.T) {
	failWith := map[string]*sagemaker.ClientError{
		"item-1": {Category: sagemaker.ErrCategoryInvocation, Message: "endpoint unreachable"},
	}
	mux := newTestMux(&stubPredictor{failWith: failWith})

	body := `[
		{"data": {"question": "Q0", "context": "C"}, "request_id": "item-0"},
		{"data": {"question": "Q1", "context": "C"}, "request_id": "item-1"},
		{"data": {"question": "Q2", "context": "C"}, "request_id": "item-2"}
	]`

	req := httptest.NewRequest(http.MethodPost, PredictBatchPath, strings.NewReader(body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body %s)", http.StatusOK, w.Code, w.Body.String())
	}

	var results []sagemaker.PredictionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("failed to decode batch response: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, expectedID := range []string{"item-0", "item-1", "item-2"} {
		if results[i].RequestID != expectedID {
			t.Errorf("result %d: expected request id %q, got %q", i, expectedID, results[i].RequestID)
		}
	}

	if results[1].Error == nil {
		t.Error("expected the failing item to carry an error")
	} else if *results[1].Error != "endpoint unreachable" {
		t.Errorf("unexpected error message %q", *results[1].Error)
	}
	for _, i := range []int{0, 2} {
		if results[i].Error != nil {
			t.Errorf("result %d: expected no error, got %q", i, *results[i].Error)
		}
		if results[i].Prediction == nil {
			t.Errorf("result %d: expected a prediction", i)
		}
	}
}

func TestPredictBatchEmpty(t *testing.T) {
	mux := newTestMux(&stubPredictor{})

	req := httptest.NewRequest(http.MethodPost, PredictBatchPath, strings.NewReader(`[]`))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty sequence body, got %q", body)
	}
}

func TestPredictBatchMalformedBody(t *testing.T) {
	mux := newTestMux(&stubPredictor{})

	req := httptest.NewRequest(http.MethodPost, PredictBatchPath, strings.NewReader(`{"data": "not a list"}`))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
