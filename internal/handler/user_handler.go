package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/wellnest/internal/db"
	"github.com/wellnest/internal/service"
)

type profilePayload struct {
	Name        *string `json:"name"`
	AgeRange    *string `json:"age_range"`
	PrimaryGoal *string `json:"primary_goal"`
	Password    *string `json:"password"`
}

// Me 返回当前登录用户的资料
func (a *API) Me(c *gin.Context) {
	user, err := a.users.Get(currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// UpdateMe 更新当前登录用户的资料
func (a *API) UpdateMe(c *gin.Context) {
	var payload profilePayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	user, err := a.users.UpdateProfile(currentUserID(c), service.ProfileInput{
		Name:        payload.Name,
		AgeRange:    payload.AgeRange,
		PrimaryGoal: payload.PrimaryGoal,
		Password:    payload.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrUserInvalid):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToPayload(user)})
}

// DeleteMe 删除当前账号及其全部数据，并清除会话
func (a *API) DeleteMe(c *gin.Context) {
	if err := a.users.DeleteAccount(currentUserID(c)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete account")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func userToPayload(user *db.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"age_range":    user.AgeRange,
		"primary_goal": user.PrimaryGoal,
		"created_at":   user.CreatedAt.Format(dateFormat),
	}
}
