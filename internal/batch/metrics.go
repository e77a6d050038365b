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

package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// labels definition
const (
	// result labels
	ResultSuccess = "success"
	ResultFailed  = "failed"

	// reason labels
	ReasonUnknown       = "unknown"
	ReasonUserError     = "user_error"   // payload could not be normalized/encoded
	ReasonSystemError   = "system_error" // invocation or projection failed
	ReasonNotConfigured = "not_configured"

	// size bucket labels
	Bucket1     = "1"     // single item
	Bucket10    = "10"    // less than 10 items
	Bucket100   = "100"   // less than 100 items
	BucketLarge = "large" // 100 items or more
)

func GetSizeBucket(totalItems int) string {
	switch {
	case totalItems <= 1:
		return Bucket1
	case totalItems < 10:
		return Bucket10
	case totalItems < 100:
		return Bucket100
	default:
		return BucketLarge
	}
}

var (
	// number of predictions processed so far
	predictionsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_processed_total",
			Help: "Total number of prediction items processed",
		}, []string{"result", "reason"},
	)

	// duration of a single prediction, normalization through projection
	predictionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "prediction_duration_seconds",
			Help: "Duration of a single prediction in seconds",
			// Bucket 1: ~ 0.01s ... Bucket 12: ~ 20.5s
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"size_bucket"},
	)

	// current number of active batch workers
	activeWorkers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_batch_workers",
			Help: "Current number of workers processing batch items",
		},
	)

	// errors by model
	predictionErrorsModelTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_errors_by_model_total",
			Help: "Total number of prediction errors by model",
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(predictionsProcessed)
	prometheus.MustRegister(predictionDuration)
	prometheus.MustRegister(activeWorkers)
	prometheus.MustRegister(predictionErrorsModelTotal)
}

// RecordPrediction increments the processed predictions count.
func RecordPrediction(result string, reason string) {
	predictionsProcessed.WithLabelValues(result, reason).Inc()
}

// RecordPredictionDuration observes the time taken by one prediction.
func RecordPredictionDuration(duration time.Duration, sizeBucket string) {
	predictionDuration.WithLabelValues(sizeBucket).Observe(duration.Seconds())
}

// IncActiveWorkers increments the gauge for active workers.
func IncActiveWorkers() {
	activeWorkers.Inc()
}

// DecActiveWorkers decrements the gauge for active workers.
func DecActiveWorkers() {
	activeWorkers.Dec()
}

// RecordPredictionError increments the error count for a specific model.
func RecordPredictionError(model string) {
	predictionErrorsModelTotal.WithLabelValues(model).Inc()
}
