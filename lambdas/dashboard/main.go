package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"go.uber.org/zap"

	"github.com/aetherdrone/infra/lib/dashboard"
)

// -------------------------------------------------------------------------------------------------
// Dashboard Lambda
// - action=location: reports the viewer's geolocation from the CloudFront headers
// - action=waf: counts WAF-blocked requests over the last hour via Logs Insights
// - answers CORS preflight for both
// -------------------------------------------------------------------------------------------------

func buildRouter(logger *zap.Logger) (*dashboard.Router, error) {
	cfg, err := dashboard.LoadConfig()
	if err != nil {
		return nil, err
	}
	edgeSpec, err := cfg.EdgeCodeSpec()
	if err != nil {
		return nil, err
	}

	// CloudFront WAF logs are always delivered to us-east-1, so the
	// logs client is pinned there rather than to the function's region.
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(cfg.WafLogsRegion),
	}))
	logs := cloudwatchlogs.New(sess)

	poller := dashboard.NewPoller(cfg.PollInterval, cfg.PollMaxAttempts, cfg.PollBudget, nil, logger)
	threats := dashboard.NewThreatCounter(logs, cfg.WafLogGroupName, cfg.QueryWindow, poller, nil, logger)
	location := dashboard.NewLocationResolver(edgeSpec, logger)

	return dashboard.NewRouter(location, threats, logger), nil
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	router, err := buildRouter(logger.Named("dashboard"))
	if err != nil {
		logger.Fatal("dashboard startup failed", zap.Error(err))
	}

	lambda.Start(router.Handle)
}
