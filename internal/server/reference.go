package server

import (
	"github.com/gin-gonic/gin"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
)

// @Summary      List Vehicle Types
// @Description  List the vehicle-type reference data
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /vehicle-types [get]
func (s *Server) ListVehicleTypes(c *gin.Context) {
	ctx := c.Request.Context()
	types, err := s.vehicleTypeRepo.FindAll(ctx, s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]vehicletypedomain.Response, 0, len(types))
	for i := range types {
		resp = append(resp, vehicletypedomain.ToResponse(&types[i]))
	}
	respondData(c, resp)
}

// @Summary      List Spaces
// @Description  List spaces with occupants and the per-category summary
// @Tags         reference
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DataResponse
// @Router       /spaces [get]
func (s *Server) ListSpaces(c *gin.Context) {
	resp, err := s.spaceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
