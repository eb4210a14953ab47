package handlers

import (
	"io"
	"strings"

	"portfolio-api/middleware"
	"portfolio-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pkg/errors"
)

// bindOptionalJSON decodes a JSON body when one was sent. An empty body is
// not an error.
func bindOptionalJSON(c *gin.Context, dest interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	// Chunked requests report an unknown length; an empty one decodes to EOF.
	if err := c.ShouldBindWith(dest, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// actingUser resolves the user an action is performed for: the userId query
// parameter, then the body, then the authenticated caller.
func actingUser(c *gin.Context) (string, error) {
	if id := strings.TrimSpace(c.Query("userId")); id != "" {
		return id, nil
	}
	var req models.UserActionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		return "", err
	}
	if id := strings.TrimSpace(req.UserID); id != "" {
		return id, nil
	}
	if identity, ok := middleware.GetIdentity(c); ok {
		return identity.UserID, nil
	}
	return "", nil
}
