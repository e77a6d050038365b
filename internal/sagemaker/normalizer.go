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

// The file implements input normalization: it maps the payload shapes
// accepted by the gateway onto the single {"inputs": ...} envelope the
// SageMaker Hugging Face containers expect.
package sagemaker

import (
	"encoding/json"
	"fmt"
)

const envelopeKey = "inputs"

// NormalizeInput reduces a payload of unknown shape to exactly one
// canonical envelope. The cascade is ordered and the first match wins:
//
//  1. mapping that already carries an `inputs` key: used unchanged,
//     sibling keys are kept as-is (the key takes priority over any
//     question/context pair at the top level);
//  2. mapping with both `question` and `context`: those two fields are
//     wrapped and every other key is dropped;
//  3. any other mapping: wrapped whole, including the empty mapping;
//  4. everything else (sequence, string, number): wrapped directly.
//
// Branches 3 and 4 deliberately accept anything; the endpoint is the
// authority on whether the inputs make sense for the model.
func NormalizeInput(data any) map[string]any {
	var envelope map[string]any

	switch payload := data.(type) {
	case map[string]any:
		if _, ok := payload[envelopeKey]; ok {
			envelope = payload
			break
		}
		question, hasQuestion := payload["question"]
		context, hasContext := payload["context"]
		if hasQuestion && hasContext {
			envelope = map[string]any{
				envelopeKey: map[string]any{
					"question": question,
					"context":  context,
				},
			}
			break
		}
		envelope = map[string]any{envelopeKey: payload}
	default:
		envelope = map[string]any{envelopeKey: data}
	}

	return envelope
}

// EncodeEnvelope serializes a canonical envelope to the UTF-8 JSON byte
// string sent as the invocation body.
func EncodeEnvelope(envelope map[string]any) ([]byte, *ClientError) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, &ClientError{
			Category: ErrCategoryInput,
			Message:  fmt.Sprintf("failed to encode %T payload as JSON: %v", envelope[envelopeKey], err),
			RawError: err,
		}
	}
	return body, nil
}

// PrepareInput runs normalization and encoding in one step.
func PrepareInput(data any) ([]byte, *ClientError) {
	return EncodeEnvelope(NormalizeInput(data))
}
