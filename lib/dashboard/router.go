package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Actions recognized by the router.
const (
	ActionLocation = "location"
	ActionWaf      = "waf"
)

// corsHeaders is the fixed header set attached to every response, the
// preflight answer included. The dashboard is served from a different
// origin than the API, so the wildcard is deliberate.
func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,OPTIONS",
	}
}

type errorBody struct {
	Error        string   `json:"error"`
	ValidActions []string `json:"validActions,omitempty"`
}

// Router is the single entry point behind the HTTP gateway. It answers
// CORS preflight itself and dispatches on the action query parameter.
type Router struct {
	location *LocationResolver
	threats  *ThreatCounter
	log      *zap.Logger
}

// NewRouter builds the request router over both resolvers.
func NewRouter(location *LocationResolver, threats *ThreatCounter, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{location: location, threats: threats, log: log.Named("router")}
}

// Handle serves one API Gateway proxy invocation. It never returns a
// non-nil error: every outcome, soft-failures included, is an HTTP
// response so the gateway never substitutes its own 502 page.
func (r *Router) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		// Preflight short-circuits before either resolver runs.
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
		}, nil
	}

	action := req.QueryStringParameters["action"]
	switch action {
	case ActionLocation:
		loc := r.location.Resolve(NormalizeHeaders(req.Headers))
		return respond(http.StatusOK, loc), nil
	case ActionWaf:
		count, ok := r.threats.Count(ctx)
		if !ok {
			// Soft-fail: zero count, still 200. Already logged upstream.
			r.log.Info("serving degraded threat count")
		}
		return respond(http.StatusOK, count), nil
	default:
		r.log.Warn("unknown action", zap.String("action", action))
		return respond(http.StatusBadRequest, errorBody{
			Error:        "missing or invalid action parameter",
			ValidActions: []string{ActionLocation, ActionWaf},
		}), nil
	}
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		// Only reachable with an unmarshalable body type, which would be
		// a programming error in this package.
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"internal serialization failure"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(payload),
	}
}
