package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parkwiselabs/parkwise/internal/auth"
	parkingdomain "github.com/parkwiselabs/parkwise/internal/parking/domain"
	reportdomain "github.com/parkwiselabs/parkwise/internal/report/domain"
	spacedomain "github.com/parkwiselabs/parkwise/internal/space/domain"
	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
)

// APIError carries an HTTP status alongside a stable machine code.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string { return e.Code }

var (
	ErrUnauthorized = &APIError{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrForbidden    = &APIError{Status: http.StatusForbidden, Code: "forbidden"}
)

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request"}
}

var errorStatus = map[error]int{
	parkingdomain.ErrPlateRequired:       http.StatusBadRequest,
	parkingdomain.ErrVehicleTypeRequired: http.StatusBadRequest,
	parkingdomain.ErrLookupKeyRequired:   http.StatusBadRequest,
	parkingdomain.ErrNegativeDiscount:    http.StatusBadRequest,
	tariffdomain.ErrInvalidVehicleType:   http.StatusBadRequest,
	tariffdomain.ErrInvalidName:          http.StatusBadRequest,
	tariffdomain.ErrInvalidBillingMode:   http.StatusBadRequest,
	tariffdomain.ErrInvalidUnitPrice:     http.StatusBadRequest,
	tariffdomain.ErrPriceImmutable:       http.StatusBadRequest,
	parkingdomain.ErrInvalidDateFilter:   http.StatusBadRequest,
	userdomain.ErrInvalidName:            http.StatusBadRequest,
	userdomain.ErrInvalidEmail:           http.StatusBadRequest,
	userdomain.ErrInvalidPassword:        http.StatusBadRequest,
	userdomain.ErrInvalidRole:            http.StatusBadRequest,
	reportdomain.ErrInvalidRange:         http.StatusBadRequest,

	parkingdomain.ErrVehicleTypeNotFound:  http.StatusNotFound,
	parkingdomain.ErrNoOpenRecordByPlate:  http.StatusNotFound,
	parkingdomain.ErrNoOpenRecordByTicket: http.StatusNotFound,
	tariffdomain.ErrNotFound:              http.StatusNotFound,
	userdomain.ErrNotFound:                http.StatusNotFound,
	vehicletypedomain.ErrNotFound:         http.StatusNotFound,
	spacedomain.ErrNotFound:               http.StatusNotFound,

	parkingdomain.ErrAlreadyParked:       http.StatusConflict,
	parkingdomain.ErrNoSpaceAvailable:    http.StatusConflict,
	parkingdomain.ErrTicketCodeCollision: http.StatusConflict,
	spacedomain.ErrNoneAvailable:         http.StatusConflict,
	spacedomain.ErrAllocationConflict:    http.StatusConflict,
	userdomain.ErrEmailTaken:             http.StatusConflict,

	userdomain.ErrInvalidCredentials: http.StatusUnauthorized,
	auth.ErrInvalidToken:             http.StatusUnauthorized,
}

// AbortWithError converts domain sentinel errors into their HTTP status
// and aborts the request. Unknown errors become an opaque 500.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr.Code})
		return
	}

	for sentinel, status := range errorStatus {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(status, gin.H{"error": sentinel.Error()})
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
