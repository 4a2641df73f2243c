package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/smallbiznis/sentra/internal/organization/domain"
)

type createOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateOrganizationRequest{
		Name:    req.Name,
		Address: req.Address,
		OwnerID: user.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (s *Server) GetOrganization(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	org, err := s.organizationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}
