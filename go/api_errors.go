package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

const problemTemplate = "problem.html"

var errPageNotFound = errors.New("page not found")

var problems = apierrors.NewChainedResponder(
	apierrors.NewResponder("", apierrors.WithHTMLTemplate(problemTemplate)),
	notFoundMapper,
	staleCartMapper,
)

// notFoundMapper turns catalog lookups that miss into 404 problems.
func notFoundMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrCategoryNotFound):
		return apierrors.ErrNotFound.WithDetail("No category matches the given query."), true
	case errors.Is(err, catalogports.ErrNotFound), errors.Is(err, cartapp.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("No product matches the given query."), true
	}
	return apierrors.ProblemDetail{}, false
}

// staleCartMapper fails loudly when a cart line points at a product that no longer exists.
func staleCartMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, cartapp.ErrMissingProduct) || errors.Is(err, ordersapp.ErrMissingProduct) {
		var productID int64
		var missing *ordersapp.MissingProductError
		var unresolved *cartdomain.UnresolvedLineError
		switch {
		case errors.As(err, &missing):
			productID = missing.ProductID
		case errors.As(err, &unresolved):
			productID = unresolved.ProductID
		}
		return apierrors.NewUnavailableProductProblem(productID), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	problems.Respond(c, problem)
	c.Abort()
}

// respondServiceError maps application errors to problems, defaulting to 500.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	problems.RespondError(c, err)
	c.Abort()
}

// respondError keeps explicit status call sites returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}
