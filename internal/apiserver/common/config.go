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

// The api server's configuration definitions.
package common

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddress = ":8000"
	defaultRegion        = "eu-north-1"
	defaultModelName     = "distilbert-base-uncased-distilled-squad"
)

type Config struct {
	ListenAddress string `json:"listen_address" yaml:"listen_address"`

	// Name of the deployed SageMaker endpoint. Absence does not fail
	// startup: the gateway starts unconfigured and reports it via /health.
	SageMakerEndpointName string `json:"sagemaker_endpoint_name" yaml:"sagemaker_endpoint_name"`

	Region    string `json:"aws_region" yaml:"aws_region"`
	ModelName string `json:"model_name" yaml:"model_name"`

	// Optional AWS base endpoint override, for local stacks.
	AWSEndpoint string `json:"aws_endpoint" yaml:"aws_endpoint"`

	MaxBatchWorkers int           `json:"max_batch_workers" yaml:"max_batch_workers"`
	RequestTimeout  time.Duration `json:"request_timeout" yaml:"request_timeout"`
	EnableCORS      bool          `json:"enable_cors" yaml:"enable_cors"`

	// Optional certificate pair for serving TLS.
	TLSCertFile string `json:"tls_cert_file" yaml:"tls_cert_file"`
	TLSKeyFile  string `json:"tls_key_file" yaml:"tls_key_file"`
}

// NewConfig returns a new Config with defaults, falling back to the
// environment variables the service has always honored.
func NewConfig() *Config {
	return &Config{
		ListenAddress:         defaultListenAddress,
		SageMakerEndpointName: os.Getenv("SAGEMAKER_ENDPOINT_NAME"),
		Region:                envOrDefault("AWS_REGION", defaultRegion),
		ModelName:             envOrDefault("MODEL_NAME", defaultModelName),
		AWSEndpoint:           os.Getenv("AWS_ENDPOINT_URL"),
		MaxBatchWorkers:       8,
		RequestTimeout:        60 * time.Second,
		EnableCORS:            true,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// AddFlags registers the configuration flags. Flag values override the
// environment.
func (c *Config) AddFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ListenAddress, "listen-address", c.ListenAddress, "Address the api server listens on")
	fs.StringVar(&c.SageMakerEndpointName, "sagemaker-endpoint-name", c.SageMakerEndpointName, "Name of the SageMaker endpoint to invoke")
	fs.StringVar(&c.Region, "aws-region", c.Region, "AWS region of the SageMaker endpoint")
	fs.StringVar(&c.ModelName, "model-name", c.ModelName, "Name of the model served by the endpoint")
	fs.StringVar(&c.AWSEndpoint, "aws-endpoint", c.AWSEndpoint, "Optional AWS base endpoint override")
	fs.IntVar(&c.MaxBatchWorkers, "max-batch-workers", c.MaxBatchWorkers, "Maximum number of batch items processed concurrently")
	fs.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Per-request timeout for endpoint invocations")
	fs.BoolVar(&c.EnableCORS, "enable-cors", c.EnableCORS, "Enable permissive CORS on all endpoints")
	fs.StringVar(&c.TLSCertFile, "tls-cert-file", c.TLSCertFile, "Path to the TLS certificate for serving HTTPS")
	fs.StringVar(&c.TLSKeyFile, "tls-key-file", c.TLSKeyFile, "Path to the TLS private key for serving HTTPS")
}

// LoadFromYAML loads the configuration from a YAML file.
func (c *Config) LoadFromYAML(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.MaxBatchWorkers < 1 {
		return fmt.Errorf("max batch workers must be at least 1, got %d", c.MaxBatchWorkers)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS cert file and key file must be specified together")
	}
	return nil
}
