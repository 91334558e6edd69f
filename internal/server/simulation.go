package server

import (
	"io"
	"net/http"

	simulationdomain "github.com/electromax/storefront/internal/simulation/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Generate Demo Sales
// @Description  Generate synthetic historical sales data
// @Tags         demo
// @Accept       json
// @Produce      json
// @Param        request body simulationdomain.GenerateRequest false "Generate Request"
// @Success      200  {object}  simulationdomain.Summary
// @Router       /demo/sales [post]
func (s *Server) GenerateDemoSales(c *gin.Context) {
	var req simulationdomain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		AbortWithError(c, invalidRequestError())
		return
	}

	summary, err := s.simulationSvc.Generate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "demo.sales.generate", "order", map[string]any{
		"clear_existing": req.ClearExisting,
		"total_orders":   summary.TotalOrders,
		"total_revenue":  summary.TotalRevenue.String(),
	})

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

type backfillMetricsRequest struct {
	// Limit caps how many products are checked; 0 means unlimited.
	Limit int `json:"limit"`
}

// @Summary      Backfill Product Metrics
// @Description  Derive missing rating and energy metrics on catalog products
// @Tags         demo
// @Accept       json
// @Produce      json
// @Param        request body backfillMetricsRequest false "Backfill Request"
// @Success      200  {object}  catalogdomain.BackfillSummary
// @Router       /demo/metrics/backfill [post]
func (s *Server) BackfillProductMetrics(c *gin.Context) {
	var req backfillMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Limit < 0 {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must not be negative"))
		return
	}

	summary, err := s.catalogSvc.BackfillMetrics(c.Request.Context(), req.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordAudit(c, "demo.metrics.backfill", "product", map[string]any{
		"products_checked": summary.ProductsChecked,
		"products_updated": summary.ProductsUpdated,
	})

	c.JSON(http.StatusOK, gin.H{"data": summary})
}
