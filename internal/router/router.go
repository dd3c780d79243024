package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskmaster/api/handler"
	"github.com/fastygo/taskmaster/internal/middleware"
)

type Handlers struct {
	Root    *apiHandler.RootHandler
	Health  *apiHandler.HealthHandler
	GraphQL *apiHandler.GraphQLHandler
}

// New registers routes and wraps the router with the given middleware,
// outermost first.
func New(handlers Handlers, middlewares ...middleware.Middleware) fasthttp.RequestHandler {
	r := router.New()
	r.HandleOPTIONS = false

	r.GET("/", handlers.Root.Welcome)
	r.GET("/health", handlers.Health.Check)
	r.POST("/graphql", handlers.GraphQL.Serve)
	r.OPTIONS("/graphql", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})

	return middleware.Chain(r.Handler, middlewares...)
}
