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

// The file provides HTTP handlers for the prediction endpoints: single
// predictions and ordered batch predictions with per-item failure
// isolation.
package predict

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
	"github.com/ml-bridge/sagemaker-gateway/internal/batch"
	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
	"k8s.io/klog/v2"
)

const (
	PredictPath      = "/predict"
	PredictBatchPath = "/predict/batch"
)

type PredictApiHandler struct {
	predictor    batch.Predictor
	orchestrator *batch.Orchestrator
}

func NewPredictApiHandler(predictor batch.Predictor, orchestrator *batch.Orchestrator) *PredictApiHandler {
	return &PredictApiHandler{
		predictor:    predictor,
		orchestrator: orchestrator,
	}
}

func (c *PredictApiHandler) GetRoutes() []common.Route {
	return []common.Route{
		{
			Method:      http.MethodPost,
			Pattern:     PredictPath,
			HandlerFunc: c.Predict,
		},
		{
			Method:      http.MethodPost,
			Pattern:     PredictBatchPath,
			HandlerFunc: c.PredictBatch,
		},
	}
}

// Predict serves one prediction. Any pipeline failure surfaces as a fault
// response with a descriptive message; nothing crashes the process.
func (c *PredictApiHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := klog.FromContext(ctx)

	var req sagemaker.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteError(ctx, w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	logger.V(3).Info("Received prediction request", "requestID", req.RequestID)

	resp, cerr := c.predictor.Predict(ctx, &req)
	if cerr != nil {
		logger.Error(cerr, "Prediction failed", "requestID", req.RequestID)
		common.WriteError(ctx, w, statusForError(cerr), fmt.Sprintf("Prediction failed: %s", cerr.Message))
		return
	}

	common.WriteJSON(ctx, w, http.StatusOK, resp)
}

// PredictBatch serves an ordered sequence of predictions. Per-item
// failures are recorded inside the sequence; the only top-level fault is
// a batch that cannot be parsed at all.
func (c *PredictApiHandler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := klog.FromContext(ctx)

	var items []sagemaker.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		common.WriteError(ctx, w, http.StatusBadRequest, fmt.Sprintf("invalid batch body: %v", err))
		return
	}

	logger.V(3).Info("Received batch prediction request", "items", len(items))

	results := c.orchestrator.ProcessBatch(ctx, items)
	common.WriteJSON(ctx, w, http.StatusOK, results)
}

// statusForError maps error categories to transport status codes: caller
// faults are 4xx, remote and configuration faults are 5xx.
func statusForError(cerr *sagemaker.ClientError) int {
	switch cerr.Category {
	case sagemaker.ErrCategoryInput:
		return http.StatusBadRequest
	case sagemaker.ErrCategoryNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
