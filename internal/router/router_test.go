package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskmaster/api/graph"
	apiHandler "github.com/fastygo/taskmaster/api/handler"
	"github.com/fastygo/taskmaster/internal/infrastructure/monitor"
	"github.com/fastygo/taskmaster/internal/middleware"
)

func newHandler(t *testing.T) fasthttp.RequestHandler {
	t.Helper()
	schema, err := graph.NewSchema(graph.Services{}, nil)
	require.NoError(t, err)

	codec := middleware.NewSessionCodec("secret", "taskmaster")
	return New(Handlers{
		Root:    apiHandler.NewRootHandler("taskmaster", nil, nil),
		Health:  apiHandler.NewHealthHandler(monitor.New(nil, 0, nil), nil, nil),
		GraphQL: apiHandler.NewGraphQLHandler(schema, nil, codec, middleware.CookieOptions{Name: "tm.sid"}, 0, nil, nil),
	}, middleware.CORS("http://localhost:3000"))
}

func request(handler fasthttp.RequestHandler, method, uri string, headers map[string]string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	for k, v := range headers {
		ctx.Request.Header.Set(k, v)
	}
	handler(ctx)
	return ctx
}

func TestRoutes(t *testing.T) {
	h := newHandler(t)

	assert.Equal(t, http.StatusOK, request(h, fasthttp.MethodGet, "/", nil).Response.StatusCode())
	assert.Equal(t, http.StatusServiceUnavailable, request(h, fasthttp.MethodGet, "/health", nil).Response.StatusCode())
	assert.Equal(t, http.StatusNotFound, request(h, fasthttp.MethodGet, "/missing", nil).Response.StatusCode())
	assert.Equal(t, http.StatusMethodNotAllowed, request(h, fasthttp.MethodGet, "/graphql", nil).Response.StatusCode())
}

func TestGraphQLPreflight(t *testing.T) {
	ctx := request(newHandler(t), fasthttp.MethodOptions, "/graphql", map[string]string{
		fasthttp.HeaderOrigin:                     "http://localhost:3000",
		fasthttp.HeaderAccessControlRequestMethod: fasthttp.MethodPost,
	})

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "http://localhost:3000", string(ctx.Response.Header.Peek(fasthttp.HeaderAccessControlAllowOrigin)))
	assert.Equal(t, "true", string(ctx.Response.Header.Peek(fasthttp.HeaderAccessControlAllowCredentials)))
}
