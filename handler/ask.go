package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/achimstruve/chatGPTWebsearchserver/version"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jsonContentType      = "application/json"
	missingPromptMessage = "Please provide a prompt in the request body"
	upstreamErrorPrefix  = "Error: "
	// Reported in place of a missing Content-Type header.
	noContentType = "None"
)

var errPromptNotString = errors.New("prompt must be a string")

func (h *HTTPHandler) ask(c *gin.Context) {
	req := c.Request
	contentType := req.Header.Get("Content-Type")

	log.WithFields(logrus.Fields{"headers": req.Header}).Debug("Request headers")
	log.Debugf("Request content type: %s", contentType)

	body, err := io.ReadAll(req.Body)
	if err != nil {
		logAndReturnError(c, err.Error(), http.StatusInternalServerError, fmt.Sprintf("Error processing request: %v", err))
		return
	}
	log.Debugf("Request data: %s", body)

	// The raw header is compared, so parameters such as charset are rejected.
	if contentType != jsonContentType {
		got := contentType
		if got == "" {
			got = noContentType
		}
		logAndReturnError(c, fmt.Sprintf("Unsupported media type. Expected application/json but got %s", got), http.StatusUnsupportedMediaType)
		return
	}

	raw, ok := promptField(body)
	if !ok {
		logAndReturnError(c, missingPromptMessage, http.StatusBadRequest)
		return
	}

	var text string
	if prompt, err := decodePrompt(raw); err != nil {
		log.Warnf("Rejecting prompt %s: %v", raw, err)
		text = upstreamErrorPrefix + err.Error()
	} else {
		text = h.answer(req.Context(), prompt)
	}
	c.JSON(http.StatusOK, AskResponse{Response: text})
}

// answer never fails. Upstream errors come back as text prefixed with
// "Error: " and are sent to the caller with a 200.
func (h *HTTPHandler) answer(ctx context.Context, prompt string) string {
	text, err := h.Completer.Complete(ctx, prompt)
	if err != nil {
		log.Errorf("Error calling completion API: %v", err)
		return upstreamErrorPrefix + err.Error()
	}
	return text
}

// promptField returns the raw "prompt" member of a JSON object body. Only the
// key's presence is checked here.
func promptField(body []byte) (json.RawMessage, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}
	raw, ok := payload["prompt"]
	return raw, ok
}

// decodePrompt accepts any JSON string, including "", and nothing else.
func decodePrompt(raw json.RawMessage) (string, error) {
	var prompt *string
	if err := json.Unmarshal(raw, &prompt); err != nil || prompt == nil {
		return "", errPromptNotString
	}
	return *prompt, nil
}

func (h *HTTPHandler) health(c *gin.Context) {
	info := version.Get(serviceName)
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: info.Service,
		Version: info.Version,
	})
}
