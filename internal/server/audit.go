package server

import (
	"net/http"
	"time"

	auditdomain "github.com/electromax/storefront/internal/audit/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recordAudit appends an entry for an administrative action. Audit failures
// are logged, never surfaced, so they cannot fail the audited request.
func (s *Server) recordAudit(c *gin.Context, action, targetType string, metadata map[string]any) {
	err := s.auditSvc.Record(c.Request.Context(), auditdomain.RecordRequest{
		ActorType:  auditdomain.ActorTypeAPI,
		Action:     action,
		TargetType: targetType,
		Metadata:   metadata,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		s.log.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}

// @Summary      List Audit Logs
// @Description  List recent administrative actions
// @Tags         audit_logs
// @Accept       json
// @Produce      json
// @Param        action  query  string  false  "Filter by action"
// @Param        limit   query  int     false  "Maximum number of rows"
// @Success      200  {object}  []auditdomain.Entry
// @Router       /audit_logs [get]
func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		Action  string `form:"action"`
		Limit   int    `form:"limit"`
		StartAt string `form:"start_at"`
		EndAt   string `form:"end_at"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := auditdomain.ListRequest{
		Action: query.Action,
		Limit:  query.Limit,
	}
	if query.StartAt != "" {
		at, err := time.Parse(time.RFC3339, query.StartAt)
		if err != nil {
			AbortWithError(c, newValidationError("start_at", "invalid_time", "start_at must be RFC3339"))
			return
		}
		req.StartAt = &at
	}
	if query.EndAt != "" {
		at, err := time.Parse(time.RFC3339, query.EndAt)
		if err != nil {
			AbortWithError(c, newValidationError("end_at", "invalid_time", "end_at must be RFC3339"))
			return
		}
		req.EndAt = &at
	}

	entries, err := s.auditSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
