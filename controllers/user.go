package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserController serves admin user management and the caller's own profile.
type UserController struct {
	Users *services.UserService
	Log   logrus.FieldLogger
}

func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	user, err := uc.Users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Create(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := uc.Users.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := uc.Users.Update(c.Request.Context(), id, input, true)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "user")
	if !ok {
		return
	}
	if err := uc.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.Get(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := uc.Users.Update(c.Request.Context(), actorFrom(c).UserID, input, false)
	if err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (uc *UserController) DeleteProfile(c *gin.Context) {
	if err := uc.Users.Delete(c.Request.Context(), actorFrom(c).UserID); err != nil {
		respondError(c, uc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
