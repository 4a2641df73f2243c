package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
)

type upsertCustomerRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Status        *string `json:"status"`
}

func (s *Server) ListCustomers(c *gin.Context) {
	var req customerdomain.ListCustomerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Name = c.Query("name")
	req.Status = c.Query("status")

	resp, err := s.customerSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req upsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	created, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:          name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer, err := s.customerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req upsertCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.customerSvc.Update(c.Request.Context(), id, customerdomain.UpdateCustomerRequest{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
