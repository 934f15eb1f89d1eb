package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/core/auth"
	"github.com/will-terra/teste-time-register/internal/domain"
	"github.com/will-terra/teste-time-register/internal/transport/http/response"
	"github.com/will-terra/teste-time-register/pkg/utils"
)

// AdminHandler exposes the operational surface: login plus read-only
// oversight of users and report jobs.
type AdminHandler struct {
	email    string
	passHash string
	jwter    *auth.JWTer
	users    domain.UserRepository
	reports  domain.ReportRepository
}

func NewAdminHandler(email, password string, jwter *auth.JWTer, users domain.UserRepository, reports domain.ReportRepository) *AdminHandler {
	return &AdminHandler{
		email:    email,
		passHash: utils.HashPassword(password),
		jwter:    jwter,
		users:    users,
		reports:  reports,
	}
}

// MountLogin goes on an unauthenticated group; Mount on the JWT group.
func (h *AdminHandler) MountLogin(g *gin.RouterGroup) {
	g.POST("/login", h.login)
}

func (h *AdminHandler) Mount(g *gin.RouterGroup) {
	g.GET("/users", h.listUsers)
	g.GET("/reports", h.listReports)
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	if in.Email != h.email || !utils.CheckPassword(in.Password, h.passHash) {
		response.Err(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.jwter.Issue(h.email, "admin")
	if err != nil || token == "" {
		response.Err(c, http.StatusInternalServerError, "issue token failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(users), "items": users})
}

func (h *AdminHandler) listReports(c *gin.Context) {
	status := domain.ReportStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		response.Err(c, http.StatusBadRequest, "unknown status")
		return
	}
	limit := atoiDefault(c.Query("limit"), 20)
	if limit > 100 {
		limit = 20
	}
	offset := atoiDefault(c.Query("offset"), 0)

	reps, total, err := h.reports.ListByStatus(status, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "items": reps})
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
