// Package relay carries the inbound caller's Authorization header through a
// request's context so that every peer call made on its behalf can forward
// it verbatim. Propagation is best-effort: a missing or unreadable
// credential never fails the call, it only means the peer sees no caller.
package relay

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const HeaderName = fiber.HeaderAuthorization

type contextKey struct {
	name string
}

var credentialKey = &contextKey{"credential"}

// WithCredential returns a copy of ctx carrying value as the caller's
// Authorization header. An empty value leaves ctx unchanged.
func WithCredential(ctx context.Context, value string) context.Context {
	if value == "" {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, credentialKey, value)
}

// CredentialFrom returns the relayed header value, if ctx carries one.
func CredentialFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(credentialKey).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Apply copies the credential from ctx onto req. It reports false when the
// request goes out without one; that outcome is informational only.
func Apply(ctx context.Context, req *http.Request) (applied bool) {
	defer func() {
		if recover() != nil {
			applied = false
		}
	}()
	if req == nil {
		return false
	}
	value, ok := CredentialFrom(ctx)
	if !ok {
		return false
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set(HeaderName, value)
	return true
}

// Capture stores the inbound Authorization header in the request's user
// context. It must run before any handler that issues peer calls.
func Capture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if value := c.Get(HeaderName); value != "" {
			// fasthttp reuses header buffers once the handler returns.
			c.SetUserContext(WithCredential(c.UserContext(), utils.CopyString(value)))
		}
		return c.Next()
	}
}
