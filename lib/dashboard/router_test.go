package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *fakeQueryService) *Router {
	return NewRouter(
		NewLocationResolver(DefaultEdgeCodeSpec(), nil),
		newTestCounter(svc),
		nil,
	)
}

func requireCORS(t *testing.T, resp events.APIGatewayProxyResponse) {
	t.Helper()
	require.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	require.Equal(t, "GET,OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
	require.NotEmpty(t, resp.Headers["Access-Control-Allow-Headers"])
}

func TestHandle_PreflightShortCircuits(t *testing.T) {
	svc := &fakeQueryService{}
	router := newTestRouter(svc)

	resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		// Present but ignored: preflight never reaches a resolver.
		QueryStringParameters: map[string]string{"action": "waf"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Body)
	requireCORS(t, resp)
	require.Zero(t, svc.startCalls)
}

func TestHandle_Location(t *testing.T) {
	router := newTestRouter(&fakeQueryService{})

	resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		QueryStringParameters: map[string]string{"action": "location"},
		Headers: map[string]string{
			"CloudFront-Viewer-City":           "Montreal",
			"CloudFront-Viewer-Country-Region": "QC",
			"CloudFront-Viewer-Country":        "CA",
			"X-Amz-Cf-Id":                      "abcd1234-YYZ50-xyz",
		},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requireCORS(t, resp)

	var loc VisitorLocation
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &loc))
	require.Equal(t, VisitorLocation{
		City:         "Montreal",
		Region:       "QC",
		Country:      "CA",
		EdgeLocation: "YYZ50",
	}, loc)
}

func TestHandle_Waf(t *testing.T) {
	router := newTestRouter(&fakeQueryService{
		statuses: []string{cloudwatchlogs.QueryStatusComplete},
		results:  [][]*cloudwatchlogs.ResultField{resultRow(blockCountField, "47")},
	})

	resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		QueryStringParameters: map[string]string{"action": "waf"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"blockCount":47}`, resp.Body)
	requireCORS(t, resp)
}

func TestHandle_WafSoftFailureStays200(t *testing.T) {
	// The query service never completes; the dashboard must still get a
	// well-formed zero instead of an error page.
	router := newTestRouter(&fakeQueryService{})

	resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		QueryStringParameters: map[string]string{"action": "waf"},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"blockCount":0}`, resp.Body)
}

func TestHandle_UnknownAction(t *testing.T) {
	router := newTestRouter(&fakeQueryService{})

	for name, params := range map[string]map[string]string{
		"absent":       nil,
		"empty":        {"action": ""},
		"unrecognized": {"action": "metrics"},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := router.Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod:            http.MethodGet,
				QueryStringParameters: params,
			})
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			requireCORS(t, resp)

			var body errorBody
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			require.NotEmpty(t, body.Error)
			require.Equal(t, []string{ActionLocation, ActionWaf}, body.ValidActions)
		})
	}
}
