package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	stockdomain "github.com/smallbiznis/sentra/internal/stock/domain"
)

type upsertStockRequest struct {
	Name     *string          `json:"name"`
	Symbol   *string          `json:"symbol"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"`
}

func (s *Server) ListStocks(c *gin.Context) {
	var req stockdomain.ListStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Name = c.Query("name")

	resp, err := s.stockSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateStock(c *gin.Context) {
	var req upsertStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	create := stockdomain.CreateStockRequest{Symbol: req.Symbol}
	if req.Name != nil {
		create.Name = *req.Name
	}
	if req.Price != nil {
		create.Price = *req.Price
	}
	if req.Quantity != nil {
		create.Quantity = *req.Quantity
	}

	created, err := s.stockSvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetStockByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	item, err := s.stockSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) UpdateStock(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req upsertStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.stockSvc.Update(c.Request.Context(), id, stockdomain.UpdateStockRequest{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteStock(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.stockSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
