package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/fastygo/taskmaster/domain"
)

// Interceptor wraps a field resolver. Interceptors are declared per field and
// run in the order given, the first one outermost.
type Interceptor func(next graphql.FieldResolveFn) graphql.FieldResolveFn

// Chain wraps resolve with the interceptors.
func Chain(resolve graphql.FieldResolveFn, interceptors ...Interceptor) graphql.FieldResolveFn {
	for i := len(interceptors) - 1; i >= 0; i-- {
		resolve = interceptors[i](resolve)
	}
	return resolve
}

// RequireAuth rejects the field with UNAUTHORIZED unless the request has a viewer.
func RequireAuth(next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if StateFrom(p.Context).Viewer() == nil {
			return nil, domain.ErrUnauthorized
		}
		return next(p)
	}
}

// viewerID is only meaningful behind RequireAuth.
func viewerID(p graphql.ResolveParams) string {
	if viewer := StateFrom(p.Context).Viewer(); viewer != nil {
		return viewer.ID
	}
	return ""
}
