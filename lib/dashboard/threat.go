package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// blockedRequestsQuery counts requests the WAF layer blocked. The alias
// must stay in sync with blockCountField.
const blockedRequestsQuery = `fields @timestamp, httpRequest.clientIp, action
| filter action = 'BLOCK'
| stats count(*) as blockCount`

const blockCountField = "blockCount"

// ThreatCount is the time-windowed aggregate returned for action=waf.
type ThreatCount struct {
	BlockCount int `json:"blockCount"`
}

// QueryService is the narrow slice of the CloudWatch Logs API the
// counter needs: submit a Logs Insights query and poll its results.
// *cloudwatchlogs.CloudWatchLogs satisfies it; tests supply fakes.
type QueryService interface {
	StartQueryWithContext(ctx aws.Context, input *cloudwatchlogs.StartQueryInput, opts ...request.Option) (*cloudwatchlogs.StartQueryOutput, error)
	GetQueryResultsWithContext(ctx aws.Context, input *cloudwatchlogs.GetQueryResultsInput, opts ...request.Option) (*cloudwatchlogs.GetQueryResultsOutput, error)
}

// ThreatCounter reports how many requests the WAF blocked over a fixed
// trailing window by running one Logs Insights query per invocation.
// Results are recomputed per request; nothing is cached or persisted.
type ThreatCounter struct {
	svc      QueryService
	logGroup string
	window   time.Duration
	poller   *Poller
	clock    clockwork.Clock
	log      *zap.Logger
}

// NewThreatCounter wires a counter against the given query service and
// WAF log group. A nil clock falls back to the real one.
func NewThreatCounter(svc QueryService, logGroup string, window time.Duration, poller *Poller, clock clockwork.Clock, log *zap.Logger) *ThreatCounter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ThreatCounter{
		svc:      svc,
		logGroup: logGroup,
		window:   window,
		poller:   poller,
		clock:    clock,
		log:      log.Named("threats"),
	}
}

// Count returns the blocked-request total for the trailing window.
// It never hard-fails: a service error, a poll budget overrun, or a
// malformed result yields a zero count with ok=false so the dashboard
// stays usable on degraded telemetry. ok=true with a zero count means
// the window genuinely contained no blocked requests.
func (t *ThreatCounter) Count(ctx context.Context) (ThreatCount, bool) {
	end := t.clock.Now()
	start := end.Add(-t.window)

	started, err := t.svc.StartQueryWithContext(ctx, &cloudwatchlogs.StartQueryInput{
		LogGroupName: aws.String(t.logGroup),
		QueryString:  aws.String(blockedRequestsQuery),
		StartTime:    aws.Int64(start.Unix()),
		EndTime:      aws.Int64(end.Unix()),
	})
	if err != nil {
		t.log.Warn("starting blocked-requests query failed",
			zap.String("logGroup", t.logGroup), zap.Error(err))
		return ThreatCount{}, false
	}

	var results *cloudwatchlogs.GetQueryResultsOutput
	state, err := t.poller.Poll(ctx, func(ctx context.Context) (bool, error) {
		out, err := t.svc.GetQueryResultsWithContext(ctx, &cloudwatchlogs.GetQueryResultsInput{
			QueryId: started.QueryId,
		})
		if err != nil {
			return false, fmt.Errorf("fetching query results: %w", err)
		}
		switch aws.StringValue(out.Status) {
		case cloudwatchlogs.QueryStatusScheduled, cloudwatchlogs.QueryStatusRunning:
			return false, nil
		case cloudwatchlogs.QueryStatusComplete:
			results = out
			return true, nil
		default:
			return false, fmt.Errorf("query ended with status %q", aws.StringValue(out.Status))
		}
	})
	if state != StateSucceeded {
		t.log.Warn("blocked-requests query did not complete",
			zap.Stringer("state", state), zap.Error(err))
		return ThreatCount{}, false
	}

	count, err := extractBlockCount(results.Results)
	if err != nil {
		t.log.Warn("blocked-requests result malformed", zap.Error(err))
		return ThreatCount{}, false
	}
	return ThreatCount{BlockCount: count}, true
}

// extractBlockCount pulls the scalar aggregate out of the Insights
// result shape: a list of rows, each a list of {field, value} pairs.
// An empty result set means no blocked requests, not an error.
func extractBlockCount(rows [][]*cloudwatchlogs.ResultField) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	field, found := lo.Find(rows[0], func(f *cloudwatchlogs.ResultField) bool {
		return f != nil && aws.StringValue(f.Field) == blockCountField
	})
	if !found {
		return 0, fmt.Errorf("field %q missing from result row", blockCountField)
	}
	count, err := strconv.Atoi(aws.StringValue(field.Value))
	if err != nil {
		return 0, fmt.Errorf("parsing %q value %q: %w", blockCountField, aws.StringValue(field.Value), err)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative %q value %d", blockCountField, count)
	}
	return count, nil
}
