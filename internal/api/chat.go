package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/nexichat/internal/errors"
	"github.com/diogo/nexichat/internal/models"
)

// chatRequest is the body posted to the collaborator
type chatRequest struct {
	Message string `json:"message"`
}

// Send posts message to the collaborator and returns the reply text.
// Transport errors, non-2xx statuses and malformed bodies all surface as
// *errors.RequestFailedError.
func (c *ChatClient) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apierrors.ErrEmptyMessage
	}

	if c.IsClosed() {
		return "", fmt.Errorf("client is closed")
	}

	requestID := c.newID()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", c.endpoint))

	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderRequestID, requestID)

	log.Debug("sending chat request", zap.Int("message_len", len(message)))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", withRequestID(apierrors.NewTransportError(c.endpoint, err), requestID)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Debug("chat request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", excerpt),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", withRequestID(apierrors.NewStatusError(resp.StatusCode, c.endpoint), requestID)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", withRequestID(apierrors.NewTransportError(c.endpoint, err), requestID)
	}
	if len(data) > maxResponseBytes {
		return "", withRequestID(apierrors.NewDecodeError(c.endpoint, "reply too large"), requestID)
	}

	reply, decodeErr := parseReply(data, c.endpoint)
	if decodeErr != nil {
		return "", withRequestID(decodeErr, requestID)
	}

	log.Debug("chat reply received",
		zap.Int("status", resp.StatusCode),
		zap.Int("reply_len", len(reply)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return reply, nil
}

// parseReply extracts the reply text from a response body of the form {"message": "..."}
func parseReply(data []byte, endpoint string) (string, *apierrors.RequestFailedError) {
	if !gjson.ValidBytes(data) {
		return "", apierrors.NewDecodeError(endpoint, "body is not valid JSON")
	}

	msg := gjson.GetBytes(data, PathReplyMessage)
	if !msg.Exists() {
		return "", apierrors.NewDecodeError(endpoint, "reply has no message field")
	}
	if msg.Type != gjson.String {
		return "", apierrors.NewDecodeError(endpoint, "reply message is not a string")
	}

	return msg.String(), nil
}

// withRequestID stamps the request ID on a RequestFailedError
func withRequestID(err *apierrors.RequestFailedError, requestID string) error {
	err.RequestID = requestID
	return err
}
