package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/Roma7-7-7/lesson-notifier/internal/push"
	pkgSSM "github.com/Roma7-7-7/lesson-notifier/pkg/ssm"
)

const (
	SinkFCM  = "fcm"
	SinkSNS  = "sns"
	SinkStub = "stub"

	defaultRegion       = "us-central1"
	defaultCollection   = "lessons"
	defaultKeyAttribute = "id"
	defaultConcurrency  = 4

	firebaseCredentialsParam = "firebase-credentials"
	snsTopicARNParam         = "sns-topic-arn"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Dev bool

	Region string `validate:"required"`
	Sink   string `validate:"oneof=fcm sns stub"`

	FirebaseProjectID       string
	FirebaseCredentialsFile string `validate:"omitempty,file"`
	FirebaseCredentialsJSON string `validate:"omitempty,json"`
	DryRun                  bool

	SNSTopicARN string `validate:"required_if=Sink sns"`

	Collection   string `validate:"required"`
	KeyAttribute string `validate:"required"`
	Concurrency  int    `validate:"min=1"`

	SSMPrefix string
}

// GetConfig reads configuration from the environment. When SSM_PREFIX is set
// outside dev mode, secrets that are not in the environment are looked up in
// Parameter Store under that prefix.
func GetConfig(ctx context.Context) (*Config, error) {
	dev := os.Getenv("ENV") == "dev"
	if dev {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	res := &Config{
		Dev:                     dev,
		Region:                  getEnv("FUNCTION_REGION", defaultRegion),
		Sink:                    strings.ToLower(getEnv("SINK", SinkFCM)),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		SNSTopicARN:             os.Getenv("SNS_TOPIC_ARN"),
		Collection:              getEnv("LESSONS_COLLECTION", defaultCollection),
		KeyAttribute:            getEnv("DYNAMODB_KEY_ATTRIBUTE", defaultKeyAttribute),
		SSMPrefix:               os.Getenv("SSM_PREFIX"),
	}

	var err error
	if res.DryRun, err = getEnvBool("FCM_DRY_RUN"); err != nil {
		return nil, err
	}
	if res.Concurrency, err = getEnvInt("LISTENER_CONCURRENCY", defaultConcurrency); err != nil {
		return nil, err
	}

	if !res.Dev && res.SSMPrefix != "" {
		if err := res.fetchSecrets(ctx); err != nil {
			return nil, err
		}
	}

	if err := res.validate(); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Config) Firebase() push.FirebaseConfig {
	return push.FirebaseConfig{
		ProjectID:       c.FirebaseProjectID,
		CredentialsFile: c.FirebaseCredentialsFile,
		CredentialsJSON: c.FirebaseCredentialsJSON,
	}
}

func (c *Config) fetchSecrets(ctx context.Context) error {
	params := make(map[string]*string, 2) //nolint:mnd // two secrets at most
	if c.Sink == SinkFCM && c.FirebaseCredentialsJSON == "" && c.FirebaseCredentialsFile == "" {
		params[pkgSSM.Prefixed(c.SSMPrefix, firebaseCredentialsParam)] = &c.FirebaseCredentialsJSON
	}
	if c.Sink == SinkSNS && c.SNSTopicARN == "" {
		params[pkgSSM.Prefixed(c.SSMPrefix, snsTopicARNParam)] = &c.SNSTopicARN
	}
	if len(params) == 0 {
		return nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config (unset SSM_PREFIX to skip SSM): %w", err)
	}

	return fetchParameters(ctx, ssm.NewFromConfig(cfg), params)
}

func fetchParameters(ctx context.Context, client pkgSSM.Client, params map[string]*string) error {
	err := pkgSSM.FetchParameters(ctx, client, params, pkgSSM.WithDecryption(), pkgSSM.AllowMissing())
	if err != nil {
		return fmt.Errorf("fetch SSM parameters (unset SSM_PREFIX to skip SSM): %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	invalid := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(invalid, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
