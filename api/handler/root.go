package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/api/transport"
	"github.com/fastygo/taskmaster/pkg/httpcontext"
)

type RootHandler struct {
	baseHandler
	appName string
}

func NewRootHandler(appName string, adapter *httpcontext.Adapter, logger *zap.Logger) *RootHandler {
	return &RootHandler{baseHandler: newBaseHandler(adapter, logger), appName: appName}
}

// Welcome answers GET / so load balancers and humans get a friendly pointer.
func (h *RootHandler) Welcome(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, transport.Welcome{
		Message: "Welcome to the " + h.appName + " API",
		GraphQL: "/graphql",
	})
}
