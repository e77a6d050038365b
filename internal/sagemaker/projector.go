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

package sagemaker

// ProjectPrediction extracts the single prediction value from an
// invocation result. Hugging Face containers wrap single-item batch
// results in a one-element sequence; in that case the first element is
// returned. Everything else, including nil, passes through unchanged.
func ProjectPrediction(result *InvocationResult) any {
	if result == nil {
		return nil
	}
	if seq, ok := result.Prediction.([]any); ok && len(seq) > 0 {
		return seq[0]
	}
	return result.Prediction
}
