package handler

import (
	"context"
	"net/http"

	"github.com/achimstruve/chatGPTWebsearchserver/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

const (
	EndPointAsk    = "/ask"
	EndPointHealth = "/health"

	serviceName = "ask-relay"
)

// Completer produces the model's answer to a single prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HTTPHandler serves the relay endpoints.
type HTTPHandler struct {
	Completer Completer
	engine    *gin.Engine
}

// NewHTTPHandler creates a new instance of HTTPHandler
func NewHTTPHandler(completer Completer) *HTTPHandler {
	h := &HTTPHandler{Completer: completer}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(logRequest, gin.CustomRecovery(recoverPanic))
	engine.NoMethod(func(c *gin.Context) {
		logAndReturnError(c, "Method not allowed", http.StatusMethodNotAllowed)
	})

	engine.POST(EndPointAsk, h.ask)
	engine.GET(EndPointHealth, h.health)

	h.engine = engine
	return h
}

// ServeHTTP implements the http.Handler interface for HTTPHandler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}
