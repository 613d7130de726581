package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rise-summit/event-registration/api"
)

// getShurjopayPassword reads the gateway password from the environment
// locally, and from SSM Parameter Store in prod so the credential never lives
// in plain env config.
func getShurjopayPassword(ctx context.Context, awsCfg aws.Config, settings ServerSettings) (string, error) {
	if settings.Env == api.LOCAL {
		password, ok := os.LookupEnv("SHURJOPAY_PASSWORD")
		if !ok {
			return "", fmt.Errorf("SHURJOPAY_PASSWORD must be set when running locally")
		}
		return password, nil
	}

	ssmClient := ssm.NewFromConfig(awsCfg)

	out, err := ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(settings.ShurjopayPasswordParamName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get shurjopay password from SSM: %w", err)
	}

	return *out.Parameter.Value, nil
}
