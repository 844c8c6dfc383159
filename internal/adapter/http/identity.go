package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/FranciscoGomes20/pdv-project/internal/app"
	"github.com/FranciscoGomes20/pdv-project/internal/domain"
)

type contextKey int

const operatorContextKey contextKey = iota

// OperatorHeader carries the requesting operator's id. Token issuance and
// verification live in front of this service; here the header is trusted.
const OperatorHeader = "X-Operator-ID"

// NewIdentityMiddleware resolves the X-Operator-ID header into a
// domain.Operator and stores it in the request context. Requests without the
// header pass through unauthenticated; operations that need an identity
// reject them individually. An id that does not resolve is a hard 401.
func NewIdentityMiddleware(api huma.API, directory *app.DirectoryService) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(OperatorHeader)
		if id == "" {
			next(ctx)
			return
		}

		operator, err := directory.Operator(ctx.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrOperatorNotFound) {
				huma.WriteErr(api, ctx, http.StatusUnauthorized, "unknown operator")
				return
			}
			huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error")
			return
		}

		next(huma.WithContext(ctx, context.WithValue(ctx.Context(), operatorContextKey, operator)))
	}
}

// operatorFrom extracts the authenticated operator, or reports 401 when the
// request carried no identity.
func operatorFrom(ctx context.Context) (domain.Operator, error) {
	operator, ok := ctx.Value(operatorContextKey).(domain.Operator)
	if !ok {
		return domain.Operator{}, huma.Error401Unauthorized("missing " + OperatorHeader + " header")
	}
	return operator, nil
}
