package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// HandleLambda answers API Gateway proxy events carrying the specification
// in the jsonData query parameter, publishing an SVG and returning its URL.
func (s *Server) HandleLambda(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	s.logger.Debug("lambda request", "path", req.Path, "method", req.HTTPMethod, "request_id", req.RequestContext.RequestID)

	raw, ok := req.QueryStringParameters[SpecParam]
	var (
		status int
		body   any
	)
	if !ok || raw == "" {
		status, body = s.failure(errors.New(errors.ErrCodeInvalidInput, "missing %s query parameter", SpecParam))
	} else {
		status, body = s.publishSpec(ctx, []byte(raw), req.QueryStringParameters["format"])
	}

	data, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}, nil
}
