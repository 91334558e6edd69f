package server

import (
	"net/http"
	"strings"

	notificationdomain "github.com/electromax/storefront/internal/notification/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      Register Device Token
// @Description  Register or re-activate a push device token
// @Tags         device_tokens
// @Accept       json
// @Produce      json
// @Param        request body notificationdomain.RegisterDeviceRequest true "Register Request"
// @Success      201  {object}  notificationdomain.DeviceToken
// @Router       /device_tokens/register [post]
func (s *Server) RegisterDeviceToken(c *gin.Context) {
	var req notificationdomain.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	token, err := s.notificationSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": token})
}

type unregisterDeviceRequest struct {
	Token string `json:"token"`
}

// @Summary      Unregister Device Token
// @Description  Deactivate a push device token
// @Tags         device_tokens
// @Accept       json
// @Produce      json
// @Param        request body unregisterDeviceRequest true "Unregister Request"
// @Success      200  {object}  map[string]string
// @Router       /device_tokens/unregister [post]
func (s *Server) UnregisterDeviceToken(c *gin.Context) {
	var req unregisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		AbortWithError(c, newValidationError("token", "required", "token is required"))
		return
	}

	if err := s.notificationSvc.Unregister(c.Request.Context(), req.Token); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List Device Tokens
// @Description  List a customer's active device tokens
// @Tags         device_tokens
// @Accept       json
// @Produce      json
// @Param        customer_id query string true "Customer ID"
// @Success      200  {object}  []notificationdomain.DeviceToken
// @Router       /device_tokens [get]
func (s *Server) ListDeviceTokens(c *gin.Context) {
	customerID := strings.TrimSpace(c.Query("customer_id"))
	if customerID == "" {
		AbortWithError(c, newValidationError("customer_id", "required", "customer_id is required"))
		return
	}

	tokens, err := s.notificationSvc.ListActive(c.Request.Context(), customerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokens})
}
