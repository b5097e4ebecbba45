package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

const dashboardPath = "/dashboard"

type AuthHandler struct {
	svc      *auth.Service
	sessions *auth.Sessions
}

func NewAuthHandler(svc *auth.Service, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

func (h *AuthHandler) userWithToken(c *gin.Context, status int, u *models.User) {
	token, err := h.svc.IssueToken(auth.NewPrincipal(u))
	if err != nil {
		h.internal(c, "issue token", err, "An error occurred. Please try again.")
		return
	}
	c.JSON(status, gin.H{"user": u, "token": token})
}

func (h *AuthHandler) internal(c *gin.Context, op string, err error, message string) {
	zap.L().Error(op+" failed", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	abortWithError(c, http.StatusInternalServerError, message)
}

// Signup registra un usuario y devuelve su token
func (h *AuthHandler) Signup(c *gin.Context) {
	var in auth.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	u, err := h.svc.Signup(c.Request.Context(), in)
	var ierr *auth.InputError
	switch {
	case err == nil:
		h.userWithToken(c, http.StatusCreated, u)
	case errors.As(err, &ierr):
		abortWithError(c, http.StatusBadRequest, ierr.Message)
	case errors.Is(err, auth.ErrEmailTaken):
		abortWithError(c, http.StatusBadRequest, "User with this email already exists")
	default:
		h.internal(c, "signup", err, "An error occurred during signup. Please try again.")
	}
}

// Login valida las credenciales y devuelve un token bearer
func (h *AuthHandler) Login(c *gin.Context) {
	var cred auth.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	ctx := c.Request.Context()
	p, err := h.svc.Authenticate(ctx, cred)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		abortWithError(c, http.StatusBadRequest, "Please provide email and password")
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		h.internal(c, "login", err, "An error occurred during login. Please try again.")
		return
	}
	u, err := h.svc.User(ctx, p)
	if err != nil {
		h.internal(c, "login", err, "An error occurred during login. Please try again.")
		return
	}
	h.userWithToken(c, http.StatusOK, u)
}

// Me devuelve la cuenta del principal actual, venga del token o de la cookie
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	u, err := h.svc.User(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			abortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.internal(c, "me", err, "An error occurred. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type signInForm struct {
	auth.Credentials
	CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
}

func (h *AuthHandler) SignInPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.html", gin.H{
		"callbackUrl": auth.SafeCallback(c.Query("callbackUrl"), dashboardPath),
	})
}

// SignIn abre la sesión del panel. Acepta formulario o JSON.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var form signInForm
	if err := c.ShouldBind(&form); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if form.CallbackURL == "" {
		form.CallbackURL = c.Query("callbackUrl")
	}
	callback := auth.SafeCallback(form.CallbackURL, dashboardPath)
	wantsJSON := c.ContentType() == gin.MIMEJSON

	p, err := h.svc.Authenticate(c.Request.Context(), form.Credentials)
	if err != nil {
		status, message := http.StatusUnauthorized, "Invalid credentials"
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			status, message = http.StatusBadRequest, "Please provide email and password"
		case !errors.Is(err, auth.ErrInvalidCredentials):
			h.internal(c, "sign in", err, "An error occurred during login. Please try again.")
			return
		}
		if wantsJSON {
			abortWithError(c, status, message)
			return
		}
		c.HTML(status, "signin.html", gin.H{"callbackUrl": callback, "email": form.Email, "error": message})
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request, p); err != nil {
		h.internal(c, "save session", err, "An error occurred during login. Please try again.")
		return
	}
	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"user": p, "callbackUrl": callback})
		return
	}
	c.Redirect(http.StatusSeeOther, callback)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		zap.L().Warn("clear session failed", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/auth/signin")
}
