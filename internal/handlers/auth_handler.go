package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/timezone"
	ucAuth "github.com/BruksfildServices01/care-scheduler/internal/usecase/auth"
)

// ActivityLister reads a user's own audit trail.
type ActivityLister interface {
	List(ctx context.Context, userID uuid.UUID, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuthHandler struct {
	register *ucAuth.Register
	login    *ucAuth.Login
	me       *ucAuth.Me
	update   *ucAuth.UpdateProfile
	activity ActivityLister
	log      *zap.Logger
}

func NewAuthHandler(
	register *ucAuth.Register,
	login *ucAuth.Login,
	me *ucAuth.Me,
	update *ucAuth.UpdateProfile,
	activity ActivityLister,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		me:       me,
		update:   update,
		activity: activity,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.register.Execute(c.Request.Context(), ucAuth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.login.Execute(c.Request.Context(), ucAuth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.me.Execute(c.Request.Context(), mustUserID(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AuthHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), mustUserID(c), ucAuth.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

// Activity lists the caller's audit trail, newest first.
func (h *AuthHandler) Activity(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", audit.DefaultPageSize),
	}
	if from, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		q.To = to
	}
	q = q.Normalize()

	logs, total, err := h.activity.List(c.Request.Context(), mustUserID(c), q)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"page":    q.Page,
		"limit":   q.Limit,
		"total":   total,
		"data":    logs,
	})
}
