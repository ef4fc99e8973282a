package server

import (
	"github.com/gin-gonic/gin"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
)

// @Summary      List Tariffs
// @Description  List all tariffs including superseded ones
// @Tags         tariffs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /tariffs [get]
func (s *Server) ListTariffs(c *gin.Context) {
	resp, err := s.tariffSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create Tariff
// @Description  Create a tariff, superseding the active one for the vehicle type
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body tariffdomain.CreateRequest true "Create Tariff Request"
// @Success      200  {object}  DataResponse
// @Router       /tariffs [post]
func (s *Server) CreateTariff(c *gin.Context) {
	var req tariffdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tariffSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Tariff
// @Description  Rename or (de)activate a tariff; price and billing mode are immutable
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                     true  "Tariff ID"
// @Param        request  body  tariffdomain.UpdateRequest true  "Update Tariff Request"
// @Success      200  {object}  DataResponse
// @Router       /tariffs/{id} [put]
func (s *Server) UpdateTariff(c *gin.Context) {
	var req tariffdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.tariffSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
