package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/auth"
	"shopadmin/internal/repository"
	"shopadmin/internal/service"
)

const msgForbidden = "Access denied. Admins only."

// replies holds the user-facing text for each failure class of one endpoint.
type replies struct {
	invalid  string
	notFound string
	internal string
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the plain-text reply for err. Internal errors are logged under op;
// their details never reach the client.
func fail(c *gin.Context, op string, err error, r replies) {
	status := mapErrorToStatus(err)
	msg := r.internal
	switch status {
	case http.StatusForbidden:
		msg = msgForbidden
	case http.StatusBadRequest:
		msg = r.invalid
	case http.StatusNotFound:
		msg = r.notFound
	}
	if msg == "" {
		status, msg = http.StatusInternalServerError, r.internal
	}
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %v", op, err)
	}
	c.String(status, msg)
}
