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

// The file defines the categorized error type shared by the prediction
// pipeline and the HTTP handlers that surface its failures.
package sagemaker

type ErrorCategory string

const (
	ErrCategoryNotConfigured ErrorCategory = "NOT_CONFIGURED" // endpoint name missing, calls cannot be made
	ErrCategoryInput         ErrorCategory = "INPUT_ERROR"    // payload could not be normalized or encoded
	ErrCategoryInvocation    ErrorCategory = "INVOCATION_ERROR"
	ErrCategoryProjection    ErrorCategory = "PROJECTION_ERROR"
)

// ClientError carries a coarse category alongside the human-readable
// message so handlers can pick a transport status without string matching.
type ClientError struct {
	Category ErrorCategory
	Message  string
	RawError error // original error, may be nil
}

func (e *ClientError) Error() string {
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.RawError
}

// IsClientFault reports whether the failure is attributable to the caller.
func (e *ClientError) IsClientFault() bool {
	return e.Category == ErrCategoryInput
}
