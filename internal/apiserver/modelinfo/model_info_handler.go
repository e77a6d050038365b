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

// The file provides the HTTP handler for the model metadata endpoint. The
// endpoint always answers with a metadata object: failures degrade to a
// partial-info shape instead of a fault response.
package modelinfo

import (
	"context"
	"net/http"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
)

const ModelInfoPath = "/model/info"

// EndpointDescriber fetches a fresh snapshot of the backing deployment.
type EndpointDescriber interface {
	Describe(ctx context.Context) *sagemaker.EndpointMetadata
}

type ModelInfoApiHandler struct {
	describer EndpointDescriber
}

func NewModelInfoApiHandler(describer EndpointDescriber) *ModelInfoApiHandler {
	return &ModelInfoApiHandler{describer: describer}
}

func (c *ModelInfoApiHandler) GetRoutes() []common.Route {
	return []common.Route{
		{
			Method:      http.MethodGet,
			Pattern:     ModelInfoPath,
			HandlerFunc: c.ModelInfo,
		},
	}
}

func (c *ModelInfoApiHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info := c.describer.Describe(r.Context())
	common.WriteJSON(r.Context(), w, http.StatusOK, info)
}
