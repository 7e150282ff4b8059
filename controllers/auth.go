package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Users        *services.UserService
	Secret       string
	Expiry       time.Duration
	CookieSecure bool
	Log          logrus.FieldLogger
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.Users.Authenticate(c.Request.Context(), input)
	if errors.Is(err, services.ErrInvalidPassword) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role, ac.Secret, ac.Expiry)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AuthCookie, token, int(ac.Expiry.Seconds()), "/", "", ac.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func (ac *AuthController) Signout(c *gin.Context) {
	c.SetCookie(utils.AuthCookie, "", -1, "/", "", ac.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Users.Get(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
