package requestctx

import "context"

// memberContextKey is the context key for authenticated member identity.
type memberContextKey struct{}

// localeContextKey is the context key for the negotiated response locale.
type localeContextKey struct{}

// WithMember stores a member identifier in context.
func WithMember(ctx context.Context, member string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, memberContextKey{}, member)
}

// MemberFromContext returns the member identifier stored in context.
func MemberFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(memberContextKey{}).(string)
	return value
}

// WithLocale stores the negotiated locale in context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// LocaleFromContext returns the locale stored in context.
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(localeContextKey{}).(string)
	return value
}
