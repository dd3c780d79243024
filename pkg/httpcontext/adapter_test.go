package httpcontext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskmaster/pkg/logger"
)

func TestAttachPropagatesRequestMetadata(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set("X-Request-ID", "abc")
	rc.Request.Header.SetUserAgent("tests")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	assert.Equal(t, "abc", appLogger.RequestID(ctx))
	assert.Equal(t, "tests", Value(ctx, KeyUserAgent))
	assert.Equal(t, "abc", string(rc.Response.Header.Peek("X-Request-ID")))
}

func TestRequestIDIsGeneratedOnce(t *testing.T) {
	var rc fasthttp.RequestCtx
	first := RequestID(&rc)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, RequestID(&rc))
}
