package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/service"
	"github.com/will-terra/teste-time-register/internal/transport/http/response"
)

type UserHandler struct {
	users     *service.UserService
	registers *service.TimeRegisterService
	reports   *service.ReportService
}

func NewUserHandler(users *service.UserService, registers *service.TimeRegisterService, reports *service.ReportService) *UserHandler {
	return &UserHandler{users: users, registers: registers, reports: reports}
}

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	g.GET("/users", h.list)
	g.POST("/users", h.create)
	g.GET("/users/:id", h.get)
	g.PUT("/users/:id", h.update)
	g.DELETE("/users/:id", h.delete)
	g.GET("/users/:id/time_registers", h.timeRegisters)
	g.POST("/users/:id/reports", h.submitReport)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) create(c *gin.Context) {
	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.Create(in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) get(c *gin.Context) {
	u, err := h.users.Get(paramID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) update(c *gin.Context) {
	var in service.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.users.Update(paramID(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.users.Delete(paramID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) timeRegisters(c *gin.Context) {
	id := paramID(c)
	if _, err := h.users.Get(id); err != nil {
		response.FromError(c, err)
		return
	}
	trs, err := h.registers.ListByUser(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, trs)
}

type submitReportIn struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// submitReport creates the queued report and returns immediately; the
// worker pool picks the job up.
func (h *UserHandler) submitReport(c *gin.Context) {
	var in submitReportIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	rep, err := h.reports.Create(paramID(c), in.StartDate, in.EndDate)
	if err != nil {
		// Date problems are request errors here, not entity errors.
		if domain.IsValidation(err) {
			response.Err(c, http.StatusBadRequest, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"process_id": rep.ProcessID,
		"status":     rep.Status,
	})
}

// paramID parses the :id segment; 0 never matches a row, so malformed
// ids surface as not found, same as unknown ones.
func paramID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
