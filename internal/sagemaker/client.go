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

// Package sagemaker implements the prediction pipeline against a deployed
// SageMaker endpoint: input normalization, endpoint invocation, response
// projection and read-only endpoint metadata.
package sagemaker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	smsdk "github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

const (
	contentTypeJSON = "application/json"

	// ModelType reported by the metadata endpoint. The gateway fronts
	// Hugging Face question-answering deployments.
	modelTypeQA = "Hugging Face Question-Answering"
)

type runtimeAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput,
		optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

type controlPlaneAPI interface {
	DescribeEndpoint(ctx context.Context, params *smsdk.DescribeEndpointInput,
		optFns ...func(*smsdk.Options)) (*smsdk.DescribeEndpointOutput, error)
	DescribeEndpointConfig(ctx context.Context, params *smsdk.DescribeEndpointConfigInput,
		optFns ...func(*smsdk.Options)) (*smsdk.DescribeEndpointConfigOutput, error)
}

// Client talks to one SageMaker endpoint through the runtime data plane
// and the management control plane. It holds read-only configuration and
// is safe for concurrent use.
type Client struct {
	runtime      runtimeAPI
	controlPlane controlPlaneAPI

	endpointName string
	region       string
	modelName    string
}

// Config holds the remote endpoint configuration.
type Config struct {
	EndpointName    string // name of the deployed SageMaker endpoint; empty means not configured
	Region          string
	ModelName       string
	Endpoint        string // optional base endpoint override, for local stacks
	AccessKeyID     string
	SecretAccessKey string
}

// New creates a client for the configured endpoint. A missing endpoint
// name is not an error: the client is created unconfigured and every
// invocation fails with ErrCategoryNotConfigured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var runtimeOpts []func(*sagemakerruntime.Options)
	var controlOpts []func(*smsdk.Options)
	if cfg.Endpoint != "" {
		runtimeOpts = append(runtimeOpts, func(o *sagemakerruntime.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
		controlOpts = append(controlOpts, func(o *smsdk.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	klog.V(3).Infof("SageMaker clients initialized for region %s", cfg.Region)

	return &Client{
		runtime:      sagemakerruntime.NewFromConfig(awsCfg, runtimeOpts...),
		controlPlane: smsdk.NewFromConfig(awsCfg, controlOpts...),
		endpointName: cfg.EndpointName,
		region:       cfg.Region,
		modelName:    cfg.ModelName,
	}, nil
}

// IsConfigured reports whether an endpoint name is set and invocations
// can be attempted.
func (c *Client) IsConfigured() bool {
	return c.endpointName != "" && c.runtime != nil && c.controlPlane != nil
}

func (c *Client) ModelName() string {
	return c.modelName
}

func (c *Client) Region() string {
	return c.region
}

// Invoke sends one encoded envelope to the endpoint and returns the
// decoded response together with the wall-clock duration of the call in
// milliseconds. No retries, no caching.
func (c *Client) Invoke(ctx context.Context, body []byte) (*InvocationResult, *ClientError) {
	if !c.IsConfigured() {
		return nil, &ClientError{
			Category: ErrCategoryNotConfigured,
			Message:  "SageMaker endpoint name is not configured",
		}
	}

	start := time.Now()
	out, err := c.runtime.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(c.endpointName),
		ContentType:  aws.String(contentTypeJSON),
		Body:         body,
	})
	elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)
	if elapsedMs < 0 {
		elapsedMs = 0
	}

	if err != nil {
		return nil, c.handleInvokeError(ctx, err)
	}

	var prediction any
	if len(out.Body) > 0 {
		if jsonErr := json.Unmarshal(out.Body, &prediction); jsonErr != nil {
			return nil, &ClientError{
				Category: ErrCategoryProjection,
				Message:  fmt.Sprintf("failed to decode endpoint response as JSON: %v", jsonErr),
				RawError: jsonErr,
			}
		}
	}

	klog.V(4).Infof("Invocation of endpoint %s completed in %.2fms, body_size=%d",
		c.endpointName, elapsedMs, len(out.Body))

	return &InvocationResult{
		Prediction:       prediction,
		ProcessingTimeMs: elapsedMs,
	}, nil
}

// handleInvokeError maps a failed runtime call onto the error taxonomy,
// distinguishing caller cancellation from remote failures.
func (c *Client) handleInvokeError(ctx context.Context, err error) *ClientError {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &ClientError{
			Category: ErrCategoryInvocation,
			Message:  "invocation cancelled",
			RawError: err,
		}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ClientError{
			Category: ErrCategoryInvocation,
			Message:  "invocation timed out",
			RawError: err,
		}
	}
	return &ClientError{
		Category: ErrCategoryInvocation,
		Message:  fmt.Sprintf("failed to invoke endpoint %s: %v", c.endpointName, err),
		RawError: err,
	}
}

// Predict runs the full pipeline for one request: normalize, invoke,
// project, assemble. The returned response always carries the model name
// and a non-empty request id.
func (c *Client) Predict(ctx context.Context, req *PredictionRequest) (*PredictionResponse, *ClientError) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	body, cerr := PrepareInput(req.Data)
	if cerr != nil {
		return nil, cerr
	}

	result, cerr := c.Invoke(ctx, body)
	if cerr != nil {
		return nil, cerr
	}

	elapsed := result.ProcessingTimeMs
	return &PredictionResponse{
		Prediction:       ProjectPrediction(result),
		ModelName:        c.modelName,
		RequestID:        requestID,
		Timestamp:        time.Now().UTC(),
		ProcessingTimeMs: &elapsed,
	}, nil
}

// FailedResponse assembles the per-item failure shape used by the batch
// path: prediction null, error set, model name and request id populated.
func (c *Client) FailedResponse(requestID string, cerr *ClientError) *PredictionResponse {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	message := cerr.Message
	return &PredictionResponse{
		ModelName: c.modelName,
		RequestID: requestID,
		Error:     &message,
		Timestamp: time.Now().UTC(),
	}
}

// Describe fetches a fresh snapshot of the endpoint deployment. It never
// returns an error: on any failure, including an unconfigured endpoint,
// the snapshot degrades to model name, region and a failure description.
func (c *Client) Describe(ctx context.Context) *EndpointMetadata {
	if !c.IsConfigured() {
		return c.degraded("endpoint name not configured")
	}

	endpoint, err := c.controlPlane.DescribeEndpoint(ctx, &smsdk.DescribeEndpointInput{
		EndpointName: aws.String(c.endpointName),
	})
	if err != nil {
		klog.Errorf("Failed to describe endpoint %s: %v", c.endpointName, err)
		return c.degraded(fmt.Sprintf("failed to describe endpoint: %v", err))
	}

	endpointConfig, err := c.controlPlane.DescribeEndpointConfig(ctx, &smsdk.DescribeEndpointConfigInput{
		EndpointConfigName: endpoint.EndpointConfigName,
	})
	if err != nil {
		klog.Errorf("Failed to describe endpoint config for %s: %v", c.endpointName, err)
		return c.degraded(fmt.Sprintf("failed to describe endpoint config: %v", err))
	}

	var instanceType *string
	if len(endpointConfig.ProductionVariants) > 0 {
		if t := string(endpointConfig.ProductionVariants[0].InstanceType); t != "" {
			instanceType = &t
		}
	}

	return &EndpointMetadata{
		ModelName:    c.modelName,
		ModelType:    modelTypeQA,
		ModelID:      c.modelName,
		EndpointName: c.endpointName,
		EndpointArn:  aws.ToString(endpoint.EndpointArn),
		Region:       c.region,
		Status:       string(endpoint.EndpointStatus),
		InstanceType: instanceType,
		CreatedAt:    endpoint.CreationTime,
		LastModified: endpoint.LastModifiedTime,
	}
}

func (c *Client) degraded(message string) *EndpointMetadata {
	return &EndpointMetadata{
		ModelName: c.modelName,
		Region:    c.region,
		Error:     message,
	}
}
