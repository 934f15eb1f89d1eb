package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/service"
	"github.com/will-terra/teste-time-register/internal/transport/http/response"
)

type TimeRegisterHandler struct {
	registers *service.TimeRegisterService
}

func NewTimeRegisterHandler(registers *service.TimeRegisterService) *TimeRegisterHandler {
	return &TimeRegisterHandler{registers: registers}
}

func (h *TimeRegisterHandler) Mount(g *gin.RouterGroup) {
	g.GET("/time_registers", h.list)
	g.POST("/time_registers", h.create)
	g.GET("/time_registers/:id", h.get)
	g.PUT("/time_registers/:id", h.update)
	g.DELETE("/time_registers/:id", h.delete)
}

func (h *TimeRegisterHandler) list(c *gin.Context) {
	trs, err := h.registers.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, trs)
}

func (h *TimeRegisterHandler) create(c *gin.Context) {
	var in service.TimeRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	tr, err := h.registers.Create(in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tr)
}

func (h *TimeRegisterHandler) get(c *gin.Context) {
	tr, err := h.registers.Get(paramID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, tr)
}

func (h *TimeRegisterHandler) update(c *gin.Context) {
	var in service.TimeRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	tr, err := h.registers.Update(paramID(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, tr)
}

func (h *TimeRegisterHandler) delete(c *gin.Context) {
	if err := h.registers.Delete(paramID(c)); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
