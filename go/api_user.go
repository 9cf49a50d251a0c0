package storefrontserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	usersapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	usersdomain "github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	usersports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

const msgInvalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// UserAPI serves the login, signup, and logout forms.
type UserAPI struct {
	service  usersports.Service
	sessions *Sessions
}

// NewUserAPI creates a UserAPI backed by the provided service and session layer.
func NewUserAPI(service usersports.Service, sessions *Sessions) UserAPI {
	return UserAPI{service: service, sessions: sessions}
}

// Get|Post /login/
// Log a user in and carry the session cart over
func (api *UserAPI) Login(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "login.html", gin.H{"Next": next})
		return
	}
	if v := c.PostForm("next"); v != "" {
		next = safeNext(v)
	}
	username := c.PostForm("username")
	result, err := api.service.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if errors.Is(err, usersapp.ErrAuthentication) {
			render(c, http.StatusBadRequest, "login.html", gin.H{
				"Next":       next,
				"Username":   username,
				"FormErrors": []string{msgInvalidLogin},
			})
			return
		}
		respondServiceError(c, err)
		return
	}
	api.sessions.Establish(c, result)
	c.Redirect(http.StatusFound, next)
}

// Get|Post /signup/
// Create an account and log it in
func (api *UserAPI) Signup(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if c.Request.Method != http.MethodPost {
		render(c, http.StatusOK, "signup.html", gin.H{"Next": next, "Errors": usersdomain.FieldErrors{}})
		return
	}
	if v := c.PostForm("next"); v != "" {
		next = safeNext(v)
	}
	form := usersdomain.SignupForm{
		Username:     c.PostForm("username"),
		Password:     c.PostForm("password1"),
		Confirmation: c.PostForm("password2"),
	}
	result, err := api.service.Signup(c.Request.Context(), form)
	if err != nil {
		var fieldErrs usersdomain.FieldErrors
		if errors.As(err, &fieldErrs) {
			render(c, http.StatusBadRequest, "signup.html", gin.H{
				"Next":     next,
				"Username": form.Username,
				"Errors":   fieldErrs,
			})
			return
		}
		if errors.Is(err, usersapp.ErrInvalidInput) {
			errs := usersdomain.FieldErrors{}
			errs.Add(usersdomain.FieldUsername, err.Error())
			render(c, http.StatusBadRequest, "signup.html", gin.H{"Next": next, "Username": form.Username, "Errors": errs})
			return
		}
		respondServiceError(c, err)
		return
	}
	api.sessions.Establish(c, result)
	c.Redirect(http.StatusFound, next)
}

// Get|Post /logout/
// End the session and drop its cart
func (api *UserAPI) Logout(c *gin.Context) {
	if err := api.sessions.End(c); err != nil {
		api.sessions.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "logout cleanup failed",
			slog.String("error", err.Error()))
	}
	c.Redirect(http.StatusFound, "/")
}
