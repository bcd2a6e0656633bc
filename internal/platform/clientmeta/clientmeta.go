// Package clientmeta carries the requesting client's IP address and browser
// description through the context, from the HTTP middleware down to the audit
// recorder that stamps them onto entries.
package clientmeta

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyClientIP struct{}
type contextKeyBrowser struct{}

// Middleware extracts the client IP and a summarized browser string from the
// request and adds them to the context. Apply it early in the chain.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := With(r.Context(), ClientIPFromRequest(r), SummarizeUserAgent(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// With injects client metadata into a context. Useful for service unit tests
// that don't run the full HTTP middleware chain.
func With(ctx context.Context, clientIP, browser string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, clientIP)
	ctx = context.WithValue(ctx, contextKeyBrowser{}, browser)
	return ctx
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

// Browser retrieves the summarized browser string from the context.
func Browser(ctx context.Context) string {
	if b, ok := ctx.Value(contextKeyBrowser{}).(string); ok {
		return b
	}
	return ""
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers in front of the service.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can list client, proxy1, proxy2, ...; the first
		// entry is the original client.
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return host
}

// SummarizeUserAgent turns a raw User-Agent header into a short human-readable
// description ("Chrome 120.0 on Linux x86_64"). Audit entries keep this
// instead of the full header so the activity screen stays legible.
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	summary := name
	if version != "" {
		summary = fmt.Sprintf("%s %s", name, version)
	}
	if os := ua.OS(); os != "" {
		summary = fmt.Sprintf("%s on %s", summary, os)
	}
	return summary
}
