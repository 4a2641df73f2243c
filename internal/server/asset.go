package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
)

type upsertAssetRequest struct {
	AssetCode    string           `json:"asset_code"`
	Name         *string          `json:"name"`
	Location     *string          `json:"location"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	Status       *string          `json:"status"`
}

func (s *Server) ListAssets(c *gin.Context) {
	var req assetdomain.ListAssetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Name = c.Query("name")
	req.Status = c.Query("status")

	resp, err := s.assetSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateAsset(c *gin.Context) {
	var req upsertAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	created, err := s.assetSvc.Create(c.Request.Context(), assetdomain.CreateAssetRequest{
		AssetCode:    req.AssetCode,
		Name:         name,
		Location:     req.Location,
		PurchaseCost: req.PurchaseCost,
		CurrentValue: req.CurrentValue,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetAssetByID(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	asset, err := s.assetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (s *Server) UpdateAsset(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req upsertAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.assetSvc.Update(c.Request.Context(), id, assetdomain.UpdateAssetRequest{
		Name:         req.Name,
		Location:     req.Location,
		PurchaseCost: req.PurchaseCost,
		CurrentValue: req.CurrentValue,
		Status:       req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) DeleteAsset(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.assetSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
