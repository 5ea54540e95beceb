package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/visualvc/versionlog/pkg/auth"
	"github.com/visualvc/versionlog/pkg/metrics"
	"github.com/visualvc/versionlog/pkg/ratelimit"
	"github.com/visualvc/versionlog/pkg/store"
)

const loginPath = "/login"

// Controller serves the server-rendered pages. Registration and login POSTs
// run behind the tightest rate limits in the application.
type Controller struct {
	log           *zap.SugaredLogger
	creds         *auth.Credentials
	sessions      *auth.SessionManager
	registerLimit *ratelimit.IPRateLimiter
	loginLimit    *ratelimit.IPRateLimiter
}

func NewController(log *zap.SugaredLogger,
	creds *auth.Credentials,
	sessions *auth.SessionManager,
	registerLimit, loginLimit *ratelimit.IPRateLimiter,
) *Controller {
	return &Controller{
		log:           log,
		creds:         creds,
		sessions:      sessions,
		registerLimit: registerLimit,
		loginLimit:    loginLimit,
	}
}

// Register mounts the page routes on the engine root.
func (ct *Controller) Register(r *gin.Engine) {
	r.GET("/register", ct.getRegister)
	r.POST("/register", ct.registerLimit.Middleware(), ct.postRegister)
	r.GET("/login", ct.getLogin)
	r.POST("/login", ct.loginLimit.Middleware(), ct.postLogin)
	r.GET("/logout", ct.sessions.RequirePage(loginPath), ct.handleLogout)
	r.GET("/", ct.sessions.RequirePage(loginPath), ct.handleIndex)
}

func (ct *Controller) getRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Message": auth.PopFlash(c)})
}

func (ct *Controller) postRegister(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := ct.creds.Register(c.Request.Context(), username, password)
	if err != nil {
		metrics.Registrations.WithLabelValues(metrics.ResultFailure).Inc()

		message := "Registration failed, please try again later."
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			message = "Username is already taken."
		case errors.Is(err, store.ErrValidation):
			message = "Username and password are required."
		default:
			ct.log.Errorw("Failed to register user", "error", err)
		}
		c.HTML(http.StatusOK, "register.html", gin.H{"Message": message})
		return
	}

	metrics.Registrations.WithLabelValues(metrics.ResultSuccess).Inc()
	auth.SetFlash(c, "Registration successful. Please log in.")
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (ct *Controller) getLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Message": auth.PopFlash(c)})
}

func (ct *Controller) postLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	userID, err := ct.creds.Verify(c.Request.Context(), username, password)
	if err != nil {
		metrics.Logins.WithLabelValues(metrics.ResultFailure).Inc()

		message := "Invalid username or password."
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			ct.log.Errorw("Failed to verify credentials", "error", err)
			message = "Login failed, please try again later."
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Message": message})
		return
	}

	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	ct.sessions.Start(c, userID, username)
	ct.log.Infow("User logged in", "username", username, "userID", userID)
	c.Redirect(http.StatusSeeOther, "/")
}

func (ct *Controller) handleLogout(c *gin.Context) {
	ct.sessions.Clear(c)
	auth.SetFlash(c, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, loginPath)
}

func (ct *Controller) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Username": c.GetString(auth.CtxUsername),
		"Message":  auth.PopFlash(c),
	})
}
