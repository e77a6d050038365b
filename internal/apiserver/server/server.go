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

// The file assembles the api server: clients, handlers, middleware and
// the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/common"
	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/health"
	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/metrics"
	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/middleware"
	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/modelinfo"
	"github.com/ml-bridge/sagemaker-gateway/internal/apiserver/predict"
	"github.com/ml-bridge/sagemaker-gateway/internal/batch"
	"github.com/ml-bridge/sagemaker-gateway/internal/sagemaker"
	utls "github.com/ml-bridge/sagemaker-gateway/internal/util/tls"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	config     *common.Config
	httpServer *http.Server
}

// New assembles the server. A missing SageMaker endpoint name does not
// fail assembly: the gateway starts degraded and reports it via /health.
func New(config *common.Config) (*Server, error) {
	client, err := sagemaker.New(context.Background(), sagemaker.Config{
		EndpointName: config.SageMakerEndpointName,
		Region:       config.Region,
		ModelName:    config.ModelName,
		Endpoint:     config.AWSEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SageMaker client: %w", err)
	}
	if !client.IsConfigured() {
		klog.Warning("SAGEMAKER_ENDPOINT_NAME is not set, predictions will fail until configured")
	}

	orchestrator := batch.NewOrchestrator(client, config.MaxBatchWorkers)

	mux := http.NewServeMux()
	common.RegisterHandler(mux, health.NewHealthApiHandler(client))
	common.RegisterHandler(mux, predict.NewPredictApiHandler(client, orchestrator))
	common.RegisterHandler(mux, modelinfo.NewModelInfoApiHandler(client))
	common.RegisterHandler(mux, metrics.NewMetricsApiHandler())

	var handler http.Handler = middleware.RequestMiddleware(mux)
	if config.EnableCORS {
		handler = middleware.CORSMiddleware(handler)
	}

	tlsConfig, err := utls.ServerTLSConfig(config.TLSCertFile, config.TLSKeyFile)
	if err != nil {
		return nil, err
	}

	return &Server{
		config: config,
		httpServer: &http.Server{
			Addr:              config.ListenAddress,
			Handler:           handler,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      config.RequestTimeout + 5*time.Second,
		},
	}, nil
}

// Start runs the listener until the context is cancelled, then shuts the
// server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	logger := klog.FromContext(ctx)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "address", s.config.ListenAddress, "tls", s.httpServer.TLSConfig != nil)
		var err error
		if s.httpServer.TLSConfig != nil {
			err = s.httpServer.ListenAndServeTLS("", "")
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
