package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/service"
	"github.com/will-terra/teste-time-register/internal/transport/http/response"
)

// ReportHandler is the read-only gateway over report jobs: status
// polling and artifact download. It never mutates a report.
type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Mount(g *gin.RouterGroup) {
	g.GET("/reports/:process_id/status", h.status)
	g.GET("/reports/:process_id/download", h.download)
}

func (h *ReportHandler) status(c *gin.Context) {
	rep, err := h.reports.Status(c.Request.Context(), c.Param("process_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := gin.H{
		"process_id": rep.ProcessID,
		"status":     rep.Status,
		"progress":   rep.Progress,
	}
	if rep.ErrorMessage != "" {
		out["error_message"] = rep.ErrorMessage
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) download(c *gin.Context) {
	filename, data, err := h.reports.Download(c.Param("process_id"))
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) && nf.Resource == "Report file" {
			response.Err(c, http.StatusNotFound, "Report file not found or has been cleaned up")
			return
		}
		response.FromError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
