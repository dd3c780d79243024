package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const sessionIDKey = "session_id"

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionCodec signs session ids into the cookie value as HS256 JWTs so a
// tampered cookie is rejected before any store lookup.
type SessionCodec struct {
	secret []byte
	issuer string
}

func NewSessionCodec(secret, issuer string) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), issuer: issuer}
}

func (c *SessionCodec) Encode(sessionID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode returns the session id carried by token.
func (c *SessionCodec) Decode(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSessionToken
	}
	if c.issuer != "" && !claims.VerifyIssuer(c.issuer, true) {
		return "", ErrInvalidSessionToken
	}
	if claims.ID == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.ID, nil
}

// CookieOptions control the session cookie attributes.
type CookieOptions struct {
	Name   string
	Secure bool
}

// SessionCookie reads a signed session cookie and stores the session id on the
// request for handlers to resolve. Invalid cookies are ignored and cleared.
func SessionCookie(codec *SessionCodec, opts CookieOptions, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if raw := ctx.Request.Header.Cookie(opts.Name); len(raw) > 0 {
				sessionID, err := codec.Decode(string(raw))
				if err != nil {
					logger.Debug("rejected session cookie", zap.Error(err))
					ClearSessionCookie(ctx, opts)
				} else {
					ctx.SetUserValue(sessionIDKey, sessionID)
				}
			}
			next(ctx)
		}
	}
}

// SessionID returns the id decoded by SessionCookie, or "".
func SessionID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(sessionIDKey).(string)
	return id
}

// SetSessionCookie writes the signed session token.
func SetSessionCookie(ctx *fasthttp.RequestCtx, opts CookieOptions, token string, expiresAt time.Time) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(opts.Name)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(opts.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(expiresAt)
	ctx.Response.Header.SetCookie(cookie)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(ctx *fasthttp.RequestCtx, opts CookieOptions) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(opts.Name)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(opts.Secure)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)
}
