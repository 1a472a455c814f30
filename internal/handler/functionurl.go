package handler

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	lambdaevents "github.com/aws/aws-lambda-go/events"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

// HandleFunctionURL adapts Handle to a Lambda Function URL invocation.
// Parameter errors map to 400, delivery errors to 502.
func (h *Handler) HandleFunctionURL(ctx context.Context, req lambdaevents.LambdaFunctionURLRequest) (lambdaevents.LambdaFunctionURLResponse, error) {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			h.logger.WarnContext(ctx, "cannot decode request body", slog.String("error", err.Error()))
			return textResponse(http.StatusBadRequest, "cannot decode request body"), nil
		}
		body = decoded
	}

	resp, err := h.Handle(ctx, body)
	if err != nil {
		if alert.IsInputError(err) {
			return textResponse(http.StatusBadRequest, err.Error()), nil
		}
		return textResponse(http.StatusBadGateway, err.Error()), nil
	}

	return lambdaevents.LambdaFunctionURLResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       resp,
	}, nil
}

func textResponse(status int, msg string) lambdaevents.LambdaFunctionURLResponse {
	return lambdaevents.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       msg,
	}
}
