package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sentra/internal/voice"
)

type voiceParseRequest struct {
	Text  string `json:"text"`
	OrgID string `json:"org_id"`
}

// ParseVoiceCommand parses a free-text command and executes it when ready.
// The tenant comes from the authenticated identity when one was resolved; the
// body org_id is honored only for anonymous callers.
func (s *Server) ParseVoiceCommand(c *gin.Context) {
	var req voiceParseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		AbortWithError(c, newValidationError("text", "invalid_text", "text is required"))
		return
	}

	var orgID snowflake.ID
	if user, ok := currentUser(c); ok {
		orgID = user.OrgID
	} else if req.OrgID != "" {
		if parsed, err := snowflake.ParseString(req.OrgID); err == nil {
			orgID = parsed
		}
	}

	intent := voice.Parse(req.Text)
	intent = s.dispatcher.Dispatch(c.Request.Context(), intent, orgID)

	c.JSON(http.StatusOK, intent)
}
