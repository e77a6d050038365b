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

// Package batch runs the prediction pipeline over a sequence of items,
// isolating failures per item.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
)

// Predictor is the single-item pipeline the orchestrator fans out over.
// *sagemaker.Client satisfies it.
type Predictor interface {
	Predict(ctx context.Context, req *sagemaker.PredictionRequest) (*sagemaker.PredictionResponse, *sagemaker.ClientError)
	FailedResponse(requestID string, cerr *sagemaker.ClientError) *sagemaker.PredictionResponse
	ModelName() string
}

// Orchestrator dispatches batch items over a bounded worker pool. The
// bound is process-wide: concurrent batches share the same pool.
type Orchestrator struct {
	predictor  Predictor
	workerPool *workerPool
}

func NewOrchestrator(predictor Predictor, maxWorkers int) *Orchestrator {
	return &Orchestrator{
		predictor:  predictor,
		workerPool: newWorkerPool(maxWorkers),
	}
}

// ProcessBatch runs the pipeline for every item and returns one response
// per input, in input order. A failing item never aborts the batch: its
// failure is recorded in that item's error field and processing continues.
func (o *Orchestrator) ProcessBatch(ctx context.Context, items []sagemaker.PredictionRequest) []sagemaker.PredictionResponse {
	logger := klog.FromContext(ctx)
	logger.V(3).Info("Processing batch", "items", len(items))

	sizeBucket := GetSizeBucket(len(items))
	results := make([]sagemaker.PredictionResponse, len(items))

	var wg sync.WaitGroup
	for i := range items {
		o.workerPool.Acquire()
		wg.Add(1)

		go func(i int, item *sagemaker.PredictionRequest) {
			itemLogger := logger.WithValues("requestID", item.RequestID, "item", i)
			itemCtx := klog.NewContext(ctx, itemLogger)

			defer func() {
				if r := recover(); r != nil {
					itemLogger.Error(fmt.Errorf("%v", r), "Panic recovered while processing batch item")
					results[i] = *o.predictor.FailedResponse(item.RequestID, &sagemaker.ClientError{
						Category: sagemaker.ErrCategoryInvocation,
						Message:  fmt.Sprintf("internal error: %v", r),
					})
					RecordPrediction(ResultFailed, ReasonUnknown)
				}
				o.workerPool.Release()
				DecActiveWorkers()
				wg.Done()
			}()

			IncActiveWorkers()
			results[i] = o.processItem(itemCtx, item, sizeBucket)
		}(i, &items[i])
	}

	wg.Wait()
	logger.V(3).Info("Batch processed", "items", len(items))
	return results
}

// processItem runs one item through the pipeline and converts any failure
// into the per-item error shape.
func (o *Orchestrator) processItem(ctx context.Context, item *sagemaker.PredictionRequest, sizeBucket string) sagemaker.PredictionResponse {
	logger := klog.FromContext(ctx)

	start := time.Now()
	defer func() {
		RecordPredictionDuration(time.Since(start), sizeBucket)
	}()

	resp, cerr := o.predictor.Predict(ctx, item)
	if cerr != nil {
		logger.Error(cerr, "Failed to process batch item")
		RecordPrediction(ResultFailed, failureReason(cerr))
		RecordPredictionError(o.predictor.ModelName())
		return *o.predictor.FailedResponse(item.RequestID, cerr)
	}

	RecordPrediction(ResultSuccess, ReasonUnknown)
	return *resp
}

func failureReason(cerr *sagemaker.ClientError) string {
	switch cerr.Category {
	case sagemaker.ErrCategoryInput:
		return ReasonUserError
	case sagemaker.ErrCategoryNotConfigured:
		return ReasonNotConfigured
	case sagemaker.ErrCategoryInvocation, sagemaker.ErrCategoryProjection:
		return ReasonSystemError
	default:
		return ReasonUnknown
	}
}
