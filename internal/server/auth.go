package server

import (
	"github.com/gin-gonic/gin"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  userdomain.Response `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Exchange email and password for a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login Request"
// @Success      200  {object}  DataResponse
// @Router       /auth/login [post]
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	row, err := s.userSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	token, err := s.tokens.Issue(row.ID.String(), row.Name, row.RoleName, s.clock.Now(ctx))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, loginResponse{
		Token: token,
		User: userdomain.Response{
			ID:        row.ID.String(),
			Name:      row.Name,
			Email:     row.Email,
			Role:      row.RoleName,
			Active:    row.Active,
			CreatedAt: row.CreatedAt,
		},
	})
}

// @Summary      Register
// @Description  Create an operator account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Register Request"
// @Success      200  {object}  DataResponse
// @Router       /auth/register [post]
func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     userdomain.RoleOperator,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
