package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/http/response"
	"github.com/yungbote/contactbook-backend/internal/services"
	"github.com/yungbote/contactbook-backend/internal/validation"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// POST /api/users
func (uh *UserHandler) Register(c *gin.Context) {
	var req validation.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := uh.userService.Register(requestDB(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/users/login
func (uh *UserHandler) Login(c *gin.Context) {
	var req validation.LoginUserRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := uh.userService.Login(requestDB(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/users/current
func (uh *UserHandler) GetCurrent(c *gin.Context) {
	res, err := uh.userService.Get(requestDB(c), currentUser(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PATCH /api/users/current
func (uh *UserHandler) UpdateCurrent(c *gin.Context) {
	var req validation.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := uh.userService.Update(requestDB(c), currentUser(c), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// DELETE /api/users/current
func (uh *UserHandler) Logout(c *gin.Context) {
	res, err := uh.userService.Logout(requestDB(c), currentUser(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}
