package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/api/graph"
	"github.com/fastygo/taskmaster/api/transport"
	"github.com/fastygo/taskmaster/domain"
	"github.com/fastygo/taskmaster/internal/middleware"
	"github.com/fastygo/taskmaster/pkg/httpcontext"
	appLogger "github.com/fastygo/taskmaster/pkg/logger"
)

// SessionResolver maps a cookie session id to the live session and its user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

type GraphQLHandler struct {
	baseHandler
	schema  graphql.Schema
	auth    SessionResolver
	codec   *middleware.SessionCodec
	cookies middleware.CookieOptions
	maxBody int
}

func NewGraphQLHandler(
	schema graphql.Schema,
	sessions SessionResolver,
	codec *middleware.SessionCodec,
	cookies middleware.CookieOptions,
	maxBody int,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *GraphQLHandler {
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &GraphQLHandler{
		baseHandler: newBaseHandler(adapter, logger),
		schema:      schema,
		auth:        sessions,
		codec:       codec,
		cookies:     cookies,
		maxBody:     maxBody,
	}
}

// Serve executes a GraphQL operation. Only application/json bodies are
// accepted, so browsers cannot send the request as a simple cross-site form post.
func (h *GraphQLHandler) Serve(ctx *fasthttp.RequestCtx) {
	if !isJSON(ctx.Request.Header.ContentType()) {
		h.writeErrors(ctx, http.StatusUnsupportedMediaType, "requests must use Content-Type application/json", domain.ErrCodeInvalid)
		return
	}
	body := ctx.PostBody()
	if len(body) > h.maxBody {
		h.writeErrors(ctx, http.StatusRequestEntityTooLarge, "request body too large", domain.ErrCodeInvalid)
		return
	}

	var req transport.GraphQLRequest
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		h.writeErrors(ctx, http.StatusBadRequest, "request body must be a JSON object with a query", domain.ErrCodeInvalid)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessionID := middleware.SessionID(ctx)
	session, viewer, err := h.auth.ResolveSession(stdCtx, sessionID)
	if err != nil {
		appLogger.WithRequestID(stdCtx, h.logger).Warn("session lookup failed, continuing anonymously", zap.Error(err))
	}
	if sessionID != "" && session == nil && err == nil {
		middleware.ClearSessionCookie(ctx, h.cookies)
	}
	if viewer != nil {
		stdCtx = appLogger.ContextWithUserID(stdCtx, viewer.ID)
	}

	state := graph.NewRequestState(session, viewer, map[string]string{
		domain.SessionMetaUserAgent:  httpcontext.Value(stdCtx, httpcontext.KeyUserAgent),
		domain.SessionMetaRemoteAddr: httpcontext.Value(stdCtx, httpcontext.KeyRemoteAddr),
	})

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: normalizeNumbers(req.Variables),
		OperationName:  req.OperationName,
		Context:        graph.WithRequestState(stdCtx, state),
	})

	h.applySession(ctx, state)
	h.writeJSON(ctx, http.StatusOK, result)
}

func (h *GraphQLHandler) applySession(ctx *fasthttp.RequestCtx, state *graph.RequestState) {
	if issued := state.Issued(); issued != nil {
		token, err := h.codec.Encode(issued.ID, issued.CreatedAt, issued.ExpiresAt)
		if err != nil {
			h.logger.Error("sign session cookie", zap.Error(err))
			return
		}
		middleware.SetSessionCookie(ctx, h.cookies, token, issued.ExpiresAt)
		return
	}
	if state.Revoked() {
		middleware.ClearSessionCookie(ctx, h.cookies)
	}
}

func (h *GraphQLHandler) writeErrors(ctx *fasthttp.RequestCtx, status int, message string, code domain.ErrorCode) {
	h.writeJSON(ctx, status, &graphql.Result{
		Errors: []gqlerrors.FormattedError{{
			Message:    message,
			Extensions: map[string]interface{}{"code": string(code)},
		}},
	})
}

func isJSON(contentType []byte) bool {
	mediaType, _, err := mime.ParseMediaType(string(contentType))
	return err == nil && mediaType == "application/json"
}

// normalizeNumbers turns json.Number values into int or float64 so graphql-go
// can coerce them into Int and Float arguments.
func normalizeNumbers(value map[string]interface{}) map[string]interface{} {
	for k, v := range value {
		value[k] = normalizeValue(v)
	}
	return value
}

func normalizeValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return int(i)
		}
		f, _ := typed.Float64()
		return f
	case map[string]interface{}:
		return normalizeNumbers(typed)
	case []interface{}:
		for i := range typed {
			typed[i] = normalizeValue(typed[i])
		}
		return typed
	}
	return v
}
