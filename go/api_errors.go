package pizzaserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	franchiseapp "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/application"
	franchiseports "github.com/Apurer/go-gin-pizza-service/internal/domains/franchises/ports"
	orderapp "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-pizza-service/internal/domains/orders/ports"
	userapp "github.com/Apurer/go-gin-pizza-service/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-pizza-service/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-pizza-service/internal/shared/errors"
)

// responder maps application errors of every bounded context to problems.
var responder = apierrors.NewResponder("", mapDomainError)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func mapDomainError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, franchiseports.ErrForbidden), errors.Is(err, orderports.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, franchiseports.ErrNotFound),
		errors.Is(err, franchiseports.ErrStoreNotFound),
		errors.Is(err, franchiseports.ErrAdminNotFound),
		errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, franchiseports.ErrDuplicateName), errors.Is(err, orderports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrInvalidInput),
		errors.Is(err, franchiseapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
