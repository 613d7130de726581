package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/rise-summit/event-registration/api"
	"github.com/rise-summit/event-registration/dynamo"
	"github.com/rise-summit/event-registration/shurjopay"
)

func main() {
	ctx := context.Background()

	// .env is only there for local dev, missing is fine
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	settings, err := getServerSettingsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading settings: %s\n", err)
		os.Exit(1)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading aws config: %s\n", err)
		os.Exit(1)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if settings.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.DynamoEndpoint)
		}
	})
	db := dynamo.NewDB(dynamoClient, settings.DynamoTableName)

	shurjopayPassword, err := getShurjopayPassword(ctx, awsCfg, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting shurjopay password: %s\n", err)
		os.Exit(1)
	}

	checkout := shurjopay.NewClient(shurjopay.Config{
		BaseURL:   settings.ShurjopayBaseURL,
		Username:  settings.ShurjopayUsername,
		Password:  shurjopayPassword,
		Prefix:    settings.ShurjopayPrefix,
		ReturnURL: settings.ShurjopayReturnURL,
		CancelURL: settings.ShurjopayCancelURL,
	}, nil)

	eventAPI := api.NewAPI(db, logger, settings.Env, checkout)

	s := &http.Server{
		Handler: eventAPI.Handler(),
		Addr:    net.JoinHostPort(settings.Host, settings.Port),
	}

	logger.Info("Starting server", slog.String("addr", s.Addr))
	log.Fatal(s.ListenAndServe())
}

type ServerSettings struct {
	Host string
	Port string
	Env  api.Environment

	DynamoTableName string
	DynamoEndpoint  string

	ShurjopayBaseURL           string
	ShurjopayUsername          string
	ShurjopayPrefix            string
	ShurjopayReturnURL         string
	ShurjopayCancelURL         string
	ShurjopayPasswordParamName string
}

func getServerSettingsFromEnv() (ServerSettings, error) {
	env, err := api.ParseEnvironment(getEnvOrDefault("ENV", "LOCAL"))
	if err != nil {
		return ServerSettings{}, err
	}

	return ServerSettings{
		Host:                       getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                       getEnvOrDefault("PORT", "8080"),
		Env:                        env,
		DynamoTableName:            getEnvOrDefault("DYNAMO_TABLE_NAME", "EventRegistration"),
		DynamoEndpoint:             getEnvOrDefault("DYNAMO_ENDPOINT", ""),
		ShurjopayBaseURL:           getEnvOrDefault("SHURJOPAY_BASE_URL", "https://sandbox.shurjopayment.com"),
		ShurjopayUsername:          getEnvOrDefault("SHURJOPAY_USERNAME", "sp_sandbox"),
		ShurjopayPrefix:            getEnvOrDefault("SHURJOPAY_PREFIX", "RISE"),
		ShurjopayReturnURL:         getEnvOrDefault("SHURJOPAY_RETURN_URL", "http://localhost:8080/payment/callback"),
		ShurjopayCancelURL:         getEnvOrDefault("SHURJOPAY_CANCEL_URL", "http://localhost:8080/payment/callback"),
		ShurjopayPasswordParamName: getEnvOrDefault("SHURJOPAY_PASSWORD_PARAM_NAME", "/event-registration/shurjopay-password"),
	}, nil
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultVal
}
