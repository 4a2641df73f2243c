package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
)

func (s *Server) ListSalesOrders(c *gin.Context) {
	var req orderdomain.ListOrderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Q = c.Query("q")
	req.Status = c.Query("status")

	resp, err := s.orderSvc.ListSalesOrders(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateSalesOrder(c *gin.Context) {
	var req orderdomain.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.CreateSalesOrder(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) GetSalesOrderByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) GetSalesOrderItems(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": order.Items})
}

func (s *Server) UpdateSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req orderdomain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.UpdateSalesOrder(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) DeleteSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.orderSvc.DeleteSalesOrder(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) GetSalesAnalytics(c *gin.Context) {
	stats, err := s.orderSvc.SalesAnalytics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) ListPurchaseOrders(c *gin.Context) {
	var req orderdomain.ListOrderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Q = c.Query("q")
	req.Status = c.Query("status")

	resp, err := s.orderSvc.ListPurchaseOrders(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreatePurchaseOrder(c *gin.Context) {
	var req orderdomain.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) GetPurchaseOrderByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) GetPurchaseOrderItems(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": order.Items})
}

func (s *Server) UpdatePurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req orderdomain.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.UpdatePurchaseOrder(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) DeletePurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.orderSvc.DeletePurchaseOrder(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
