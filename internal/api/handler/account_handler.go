package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tuneup/accounts-api/internal/api/metrics"
	"github.com/tuneup/accounts-api/internal/core/domain"
	"github.com/tuneup/accounts-api/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Field order matters: validation reports the first failing field, and the
// contract fixes the order to email, password, username.
type signupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
	Role     string `json:"role"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the wire form of a domain.AuthResult.
type authResponse struct {
	Status    string       `json:"status"`
	Message   string       `json:"message,omitempty"`
	Token     string       `json:"token,omitempty"`
	User      *domain.User `json:"user,omitempty"`
	ExpiresIn int          `json:"expiresIn,omitempty"`
}

func toWire(res domain.AuthResult) authResponse {
	return authResponse{
		Status:    res.Status,
		Message:   res.Message,
		Token:     res.Token,
		User:      res.User,
		ExpiresIn: res.ExpiresIn,
	}
}

// Signup registers a new account and signs it in immediately.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      500   {object}  authResponse
// @Router       /user/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	if c.Request().Body == nil || c.Request().ContentLength == 0 {
		return c.JSON(http.StatusBadRequest, authResponse{Status: domain.StatusError, Message: "User data is required"})
	}

	// Bind through a pointer: a JSON-literal null body decodes to a nil
	// request, which is rejected the same way as a missing body.
	var req *signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, authResponse{
			Status:  domain.StatusError,
			Message: "An unexpected error occurred: " + err.Error(),
		})
	}
	if req == nil {
		return c.JSON(http.StatusBadRequest, authResponse{Status: domain.StatusError, Message: "User data is required"})
	}
	if err := c.Validate(req); err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, authResponse{Status: domain.StatusError, Message: err.Error()})
	}

	res := h.accounts.Register(c.Request().Context(), &domain.User{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if !res.OK() {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusBadRequest, toWire(res))
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toWire(res))
}

// Signin authenticates an email/password pair and returns a token.
//
// @Summary      Sign in
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  authResponse
// @Router       /user/signin [post]
func (h *AccountHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, authResponse{
			Status:  domain.StatusError,
			Message: "An unexpected error occurred: " + err.Error(),
		})
	}

	res := h.accounts.Authenticate(c.Request().Context(), req.Email, req.Password)
	if !res.OK() {
		metrics.SigninsTotal.WithLabelValues("denied").Inc()
		return c.JSON(http.StatusUnauthorized, toWire(res))
	}

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toWire(res))
}

// GetByID returns the user record for a numeric identifier.
//
// @Summary      Fetch a user by id
// @Tags         user
// @Produce      json
// @Param        id   path      int  true  "User identifier"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  authResponse
// @Failure      404  {object}  authResponse
// @Router       /user/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{Status: domain.StatusError, Message: "invalid user id"})
	}

	user, err := h.accounts.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, authResponse{Status: domain.StatusError, Message: "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// Me returns the record of the authenticated caller.
//
// @Summary      Fetch the authenticated user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  authResponse
// @Failure      404  {object}  authResponse
// @Router       /user/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.FindByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusNotFound, authResponse{Status: domain.StatusError, Message: "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}
