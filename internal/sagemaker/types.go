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

// The file defines the API data structures exchanged with gateway callers.
package sagemaker

import "time"

// PredictionRequest is the payload accepted by the predict endpoints.
type PredictionRequest struct {
	// Input data for the prediction. For question-answering models this is
	// an object with `question` and `context` fields, but free-form
	// mappings, sequences and scalars are accepted too.
	Data any `json:"data"`

	// Unique identifier of the request. Generated when absent.
	RequestID string `json:"request_id,omitempty"`

	// Optional caller metadata. Opaque to the gateway, never forwarded.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// QuestionAnsweringResult is the answer object returned by Hugging Face
// question-answering models.
type QuestionAnsweringResult struct {
	// The predicted answer text.
	Answer string `json:"answer"`

	// Confidence score of the prediction.
	Score float64 `json:"score"`

	// Start position of the answer in the context.
	Start int `json:"start"`

	// End position of the answer in the context.
	End int `json:"end"`
}

// PredictionResponse is the per-item result returned by the predict
// endpoints. Exactly one of Prediction and Error is meaningful.
type PredictionResponse struct {
	// The projected model output. For question-answering models the shape
	// matches QuestionAnsweringResult; other model types return arbitrary
	// JSON. Null when the item failed.
	Prediction any `json:"prediction"`

	// Name of the model that served the prediction.
	ModelName string `json:"model_name"`

	// Identifier of the originating request, caller-supplied or generated.
	RequestID string `json:"request_id"`

	// Human-readable failure message. Null when the item succeeded.
	Error *string `json:"error"`

	// When the response was assembled (UTC).
	Timestamp time.Time `json:"timestamp"`

	// Wall-clock duration of the endpoint invocation, in milliseconds.
	ProcessingTimeMs *float64 `json:"processing_time_ms,omitempty"`
}

// InvocationResult is the raw outcome of one endpoint invocation before
// projection.
type InvocationResult struct {
	// The decoded JSON body returned by the endpoint.
	Prediction any

	// Wall-clock duration of the call in milliseconds. Never negative.
	ProcessingTimeMs float64
}

// EndpointMetadata is a read-only snapshot of the backing deployment.
// Fetched fresh on every query, never cached.
type EndpointMetadata struct {
	ModelName string `json:"model_name"`

	// Type of the model, e.g. "Hugging Face Question-Answering".
	ModelType string `json:"model_type,omitempty"`

	// Hugging Face model identifier.
	ModelID string `json:"model_id,omitempty"`

	EndpointName string `json:"endpoint_name,omitempty"`
	EndpointArn  string `json:"endpoint_arn,omitempty"`

	// AWS region where the endpoint is deployed.
	Region string `json:"region"`

	// Current status of the endpoint, e.g. "InService".
	Status string `json:"status,omitempty"`

	// Instance type of the first production variant, if any.
	InstanceType *string `json:"instance_type,omitempty"`

	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`

	// Failure description when only degraded metadata could be collected.
	Error string `json:"error,omitempty"`
}
