package server

import (
	"github.com/gin-gonic/gin"
	reportdomain "github.com/parkwiselabs/parkwise/internal/report/domain"
)

// @Summary      Operations Report
// @Description  Aggregate closed records over an inclusive day range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "Start day YYYY-MM-DD"
// @Param        to    query  string  false  "End day YYYY-MM-DD"
// @Success      200  {object}  DataResponse
// @Router       /reports [get]
func (s *Server) GetReport(c *gin.Context) {
	var req reportdomain.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reportSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
