package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      List Products
// @Description  List catalog products, optionally filtered to a set of IDs
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        ids    query  string  false  "Comma-separated product IDs"
// @Param        limit  query  int     false  "Maximum number of rows"
// @Success      200  {object}  []catalogdomain.Product
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		IDs   string `form:"ids"`
		Limit int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ids, err := parseIDList(query.IDs)
	if err != nil {
		AbortWithError(c, newValidationError("ids", "invalid_ids", "ids must be comma-separated integers"))
		return
	}

	products, err := s.catalogSvc.ListProducts(c.Request.Context(), catalogdomain.ListProductsRequest{
		IDs:   ids,
		Limit: query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// @Summary      Get Product
// @Description  Get product by ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  catalogdomain.Product
// @Router       /products/{id} [get]
func (s *Server) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	product, err := s.catalogSvc.GetProductByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func parseIDList(raw string) ([]snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]snowflake.ID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := snowflake.ParseString(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
