package auth

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/server"
)

// Handler exposes the authentication flows over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the HTTP handler for the auth routes.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register. Field validation lives in the
// service so the messages stay consistent wherever the flow is invoked;
// only body decoding is handled here.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("Invalid request body."))
		return
	}

	session, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondCreated(c, "User registered successfully.", session)
}

// Login handles POST /auth/login. A body missing either field reports the
// combined message; anything undecodable is a plain bad request.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			server.RespondWithError(c, errors.Validation("Please provide email and password."))
			return
		}
		server.RespondWithError(c, errors.Validation("Invalid request body."))
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, "Login successful.", session)
}

// Me handles GET /auth/me and echoes the identity RequireAuth resolved.
func (h *Handler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}

	server.RespondOK(c, "", gin.H{"user": user})
}
