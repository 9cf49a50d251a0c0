package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ContentTypeProblemJSON = "application/problem+json"

// Responder writes problems, negotiating between JSON and an HTML page.
type Responder struct {
	// BaseURI prefixes relative problem types.
	BaseURI string
	// HTMLTemplate is the gin template used when the client prefers HTML. Empty means JSON only.
	HTMLTemplate string
}

type ResponderOption func(*Responder)

// WithHTMLTemplate renders problems through the named template for browsers.
func WithHTMLTemplate(name string) ResponderOption {
	return func(r *Responder) { r.HTMLTemplate = name }
}

func NewResponder(baseURI string, opts ...ResponderOption) *Responder {
	r := &Responder{BaseURI: baseURI}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// DefaultResponder emits JSON problems with relative types.
var DefaultResponder = NewResponder("")

// Respond writes problem, filling Instance from the request path when unset.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if r.HTMLTemplate != "" && c.NegotiateFormat(gin.MIMEHTML, ContentTypeProblemJSON, gin.MIMEJSON) == gin.MIMEHTML {
		c.HTML(problem.Status, r.HTMLTemplate, gin.H{"Problem": problem})
		return
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err as-is when it is a ProblemDetail, otherwise as a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// ErrorMapper translates an application error into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder consults its mappers in order before the default handling.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder wraps responder, or DefaultResponder when nil.
func NewChainedResponder(responder *Responder, mappers ...ErrorMapper) *ChainedResponder {
	if responder == nil {
		responder = DefaultResponder
	}
	return &ChainedResponder{Responder: responder, mappers: mappers}
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// StatusOf reports the status a problem error carries, or 500.
func StatusOf(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
