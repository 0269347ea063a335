package api

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
	"github.com/louisbranch/hextable/internal/platform/requestctx"
	"github.com/louisbranch/hextable/internal/services/api/httpx"
)

// memberHeader carries the acting member identity, set by the fronting
// identity layer. The API never resolves identity itself.
const memberHeader = "X-Member"

const tracerName = "github.com/louisbranch/hextable/internal/services/api"

// requireMember rejects requests without an acting identity and stores the
// member in the request context for handlers.
func requireMember(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member := strings.TrimSpace(r.Header.Get(memberHeader))
		if member == "" {
			writeError(w, r, apperrors.New(apperrors.CodeUnauthenticated, "member identity header is required"))
			return
		}
		ctx := requestctx.WithMember(r.Context(), member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLocale negotiates the response locale from Accept-Language and stores
// it in the request context for error rendering.
func withLocale() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(r.Header.Get("Accept-Language"))
			if locale == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := requestctx.WithLocale(r.Context(), locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveLocale picks the highest-weighted Accept-Language tag. Matching
// against the catalog's supported locales happens at render time.
func resolveLocale(acceptLanguage string) string {
	accept := strings.TrimSpace(acceptLanguage)
	if accept == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

// withSpan wraps each request in an OpenTelemetry server span.
func withSpan() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracer := otel.Tracer(tracerName)
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
