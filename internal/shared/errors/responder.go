package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details responses.
type Responder struct {
	// BaseURI is prepended to relative problem type URIs.
	BaseURI string
	mappers []ErrorMapper
}

// ErrorMapper maps domain/application errors to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// NewResponder creates a responder; mappers are consulted in order by RespondError.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// DefaultResponder uses relative URIs and no custom mappers.
var DefaultResponder = NewResponder("")

// Respond sends a ProblemDetail response with the problem content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, r.prepare(c, problem))
}

// Abort writes the problem and stops the handler chain. Used by middleware.
func (r *Responder) Abort(c *gin.Context, problem ProblemDetail) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, r.prepare(c, problem))
}

// RespondError converts err to a ProblemDetail and responds.
// Mappers run first, then an embedded ProblemDetail, then 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

func (r *Responder) prepare(c *gin.Context, problem ProblemDetail) ProblemDetail {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	return problem
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// Abort is a convenience function using the default responder.
func Abort(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Abort(c, problem)
}

// HTTPStatusFromError extracts the HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
