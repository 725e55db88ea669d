package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func logRequest(c *gin.Context) {
	c.Next()
	req := c.Request
	log.Infof("%s -- %s -- %s -- %d", req.RemoteAddr, req.Method, req.URL.Path, c.Writer.Status())
}

func logAndReturnError(c *gin.Context, httpResponseStr string, code int, consoleStr ...string) {
	// consoleStr is optional.
	msg := httpResponseStr
	if len(consoleStr) > 0 {
		msg = consoleStr[0]
	}
	if code >= http.StatusInternalServerError {
		log.Errorln(msg)
	} else {
		log.Warnln(msg)
	}
	c.AbortWithStatusJSON(code, ErrorResponse{Error: httpResponseStr})
}

func recoverPanic(c *gin.Context, recovered any) {
	msg := fmt.Sprint(recovered)
	logAndReturnError(c, msg, http.StatusInternalServerError, "Error processing request: "+msg)
}
