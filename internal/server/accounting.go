package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	accountingdomain "github.com/smallbiznis/sentra/internal/accounting/domain"
)

type createEntryRequest struct {
	Type        string           `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description *string          `json:"description"`
	EntryDate   *time.Time       `json:"entry_date"`
}

func (s *Server) ListAccountingEntries(c *gin.Context) {
	var req accountingdomain.ListEntryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Type = accountingdomain.EntryType(c.Query("type"))

	resp, err := s.accountingSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateAccountingEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entry, err := s.accountingSvc.Create(c.Request.Context(), accountingdomain.CreateEntryRequest{
		Type:        accountingdomain.EntryType(req.Type),
		Amount:      *req.Amount,
		Description: req.Description,
		EntryDate:   req.EntryDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) GetAccountingEntryByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	entry, err := s.accountingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) DeleteAccountingEntry(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.accountingSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) GetAccountingSummary(c *gin.Context) {
	summary, err := s.accountingSvc.Summarize(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
