package server

import (
	"github.com/gin-gonic/gin"
	parkingdomain "github.com/parkwiselabs/parkwise/internal/parking/domain"
)

type entryRequest struct {
	Plate         string `json:"plate"`
	VehicleTypeID string `json:"vehicle_type_id"`
}

type exitRequest struct {
	Plate      string `json:"plate"`
	TicketCode string `json:"ticket_code"`
	Discount   int64  `json:"discount"`
}

// @Summary      Record Entry
// @Description  Register a vehicle entering the facility
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body entryRequest true "Entry Request"
// @Success      200  {object}  DataResponse
// @Router       /records/entry [post]
func (s *Server) RecordEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.parkingSvc.Enter(c.Request.Context(), parkingdomain.EnterRequest{
		Plate:         req.Plate,
		VehicleTypeID: req.VehicleTypeID,
		ActorID:       actorID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      Record Exit
// @Description  Close an open parking record by plate or ticket code
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body exitRequest true "Exit Request"
// @Success      200  {object}  DataResponse
// @Router       /records/exit [post]
func (s *Server) RecordExit(c *gin.Context) {
	var req exitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.parkingSvc.Exit(c.Request.Context(), parkingdomain.ExitRequest{
		Plate:      req.Plate,
		TicketCode: req.TicketCode,
		Discount:   req.Discount,
		ActorID:    actorID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// @Summary      List Records
// @Description  List parking records with optional status and entry-date filters
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "OPEN or CLOSED"
// @Param        date    query  string  false  "Entry date YYYY-MM-DD"
// @Success      200  {object}  DataResponse
// @Router       /records [get]
func (s *Server) ListRecords(c *gin.Context) {
	var query struct {
		Status string `form:"status"`
		Date   string `form:"date"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.parkingSvc.List(c.Request.Context(), parkingdomain.ListRequest{
		Status: query.Status,
		Date:   query.Date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
