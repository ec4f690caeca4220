// Package ssm fills configuration values from AWS Systems Manager (SSM) Parameter Store.
//
// Parameters are requested in batches that respect the GetParameters limit,
// SecureString values can be decrypted, and callers decide whether missing
// parameters are an error.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	client := ssm.NewFromConfig(cfg)
//
//	var credentials, topicARN string
//	err := ssm.FetchParameters(ctx, client, map[string]*string{
//		"/lesson-notifier/prod/firebase-credentials": &credentials,
//		"/lesson-notifier/prod/sns-topic-arn":        &topicARN,
//	}, ssm.WithDecryption(), ssm.AllowMissing())
package ssm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// MaxBatchSize is the number of names a single GetParameters call accepts.
const MaxBatchSize = 10

// ErrParamsNotFound is returned when one or more requested parameters
// do not exist in Parameter Store and AllowMissing was not set.
var ErrParamsNotFound = errors.New("params not found")

// Client is the subset of the SSM API used by this package.
type Client interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

type fetchOptions struct {
	withDecryption bool
	allowMissing   bool
}

// Option configures FetchParameters.
type Option func(*fetchOptions)

// WithDecryption decrypts SecureString parameters.
func WithDecryption() Option {
	return func(o *fetchOptions) {
		o.withDecryption = true
	}
}

// AllowMissing leaves destinations of missing parameters untouched instead of
// failing with ErrParamsNotFound.
func AllowMissing() Option {
	return func(o *fetchOptions) {
		o.allowMissing = true
	}
}

// Prefixed joins a parameter name onto a path prefix such as "/app/prod".
func Prefixed(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(name, "/")
}

// FetchParameters retrieves the named parameters and stores each value in its
// destination pointer. Names are sorted and requested in batches of MaxBatchSize.
func FetchParameters(ctx context.Context, client Client, params map[string]*string, opts ...Option) error {
	if len(params) == 0 {
		return nil
	}

	options := &fetchOptions{}
	for _, o := range opts {
		o(options)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	var missing []string
	for batch := range slices.Chunk(names, MaxBatchSize) {
		result, err := client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          batch,
			WithDecryption: aws.Bool(options.withDecryption),
		})
		if err != nil {
			return fmt.Errorf("ssm get parameters: %w", err)
		}

		missing = append(missing, result.InvalidParameters...)

		for _, param := range result.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			if dest, ok := params[*param.Name]; ok {
				*dest = *param.Value
			}
		}
	}

	if len(missing) > 0 && !options.allowMissing {
		return fmt.Errorf("%w: %s", ErrParamsNotFound, strings.Join(missing, ", "))
	}

	return nil
}
