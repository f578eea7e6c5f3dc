package auth

import (
	"errors"
	"net/http"

	"bakery/internal/domain"
	"bakery/internal/middleware"
	"bakery/internal/pkg/labels"
	"bakery/internal/pkg/response"
	"bakery/internal/pkg/validator"
	"bakery/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler manages all HTTP interactions for accounts and sessions
type Handler struct {
	service  *Service
	sessions *session.Manager
	log      *zap.Logger
}

func NewHandler(service *Service, sessions *session.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, sessions: sessions, log: log}
}

// RegisterPublicRoutes mounts the login and registration pages. loginLimit, when set,
// guards POST /login only.
func (h *Handler) RegisterPublicRoutes(r gin.IRouter, loginLimit gin.HandlerFunc) {
	r.GET("/login", h.LoginForm)
	if loginLimit != nil {
		r.POST("/login", loginLimit, h.Login)
	} else {
		r.POST("/login", h.Login)
	}
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
}

func (h *Handler) RegisterProtectedRoutes(r gin.IRouter) {
	r.GET("/logout", h.Logout)
	r.GET("/users/profile", h.Profile)
}

func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"page":   "login",
		"fields": []string{"email", "password"},
	})
}

func (h *Handler) RegisterForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"page":   "register",
		"fields": []string{"name", "email", "password"},
	})
}

// Register creates an account. The user logs in separately afterwards.
func (h *Handler) Register(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed))
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed), t.Fields(errs))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", t.Get(labels.EmailExists))
			return
		}
		h.log.Error("register failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", t.Get(labels.GenericError))
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":    toPublic(user),
		"message": t.Get(labels.Registered),
	})
}

// Login checks credentials and opens a session. Unknown email and wrong password
// produce the same response.
func (h *Handler) Login(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed))
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", t.Get(labels.ValidationFailed), t.Fields(errs))
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", t.Get(labels.InvalidCredentials))
			return
		}
		h.log.Error("login failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", t.Get(labels.GenericError))
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		h.log.Error("session start failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", t.Get(labels.GenericError))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":     toPublic(user),
		"redirect": "/dashboard",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	t := labels.For(c.GetHeader("Accept-Language"))
	h.sessions.Invalidate(c, h.sessions.Load(c))
	response.Success(c, http.StatusOK, gin.H{
		"message":  t.Get(labels.LoggedOut),
		"redirect": middleware.LoginPath,
	})
}

func (h *Handler) Profile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	user, err := h.service.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		h.log.Error("profile lookup failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
