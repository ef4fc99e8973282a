package server

import (
	"github.com/gin-gonic/gin"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
)

type setUserActiveRequest struct {
	Active *bool `json:"active"`
}

// @Summary      List Users
// @Description  List all operator and administrator accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /users [get]
func (s *Server) ListUsers(c *gin.Context) {
	resp, err := s.userSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create User
// @Description  Create an account with an explicit role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body userdomain.CreateRequest true "Create User Request"
// @Success      200  {object}  DataResponse
// @Router       /users [post]
func (s *Server) CreateUser(c *gin.Context) {
	var req userdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Set User Active
// @Description  Activate or deactivate an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "User ID"
// @Param        request  body  setUserActiveRequest  true  "Set Active Request"
// @Success      200  {object}  DataResponse
// @Router       /users/{id}/active [patch]
func (s *Server) SetUserActive(c *gin.Context) {
	var req setUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.SetActive(c.Request.Context(), userdomain.SetActiveRequest{
		ID:     c.Param("id"),
		Active: *req.Active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
