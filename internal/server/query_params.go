package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context) (snowflake.ID, error) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		return 0, newValidationError("id", "invalid_id", "invalid identifier")
	}
	return id, nil
}
