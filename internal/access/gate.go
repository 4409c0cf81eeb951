package access

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/auth"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/metrics"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
)

const (
	TokenCookie = "token"
	LoginPath   = "/login"
)

type Verifier interface {
	Verify(token string) (auth.Identity, error)
}

type Options struct {
	// AllowUnverifiedDashboard lets /{role}/dashboard pages through without a
	// token. Off unless explicitly configured.
	AllowUnverifiedDashboard bool
	// Rules replaces DefaultRules when set.
	Rules []Rule
}

type Gate struct {
	table  *Table
	tokens Verifier
}

func NewGate(tokens Verifier, opts Options) *Gate {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	if opts.AllowUnverifiedDashboard {
		rules = append(append([]Rule{}, rules...), DashboardRules()...)
	}
	return &Gate{table: NewTable(rules), tokens: tokens}
}

// Middleware allows or denies every request before it reaches next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, ok := g.table.Lookup(r.URL.Path)
		if !ok {
			rule = Rule{Level: Authenticated, Kind: Page}
		}
		if rule.Level == Public {
			next.ServeHTTP(w, r)
			return
		}

		token := TokenFromRequest(r)
		if token == "" {
			g.deny(w, r, rule, apperr.MissingToken())
			return
		}
		id, err := g.tokens.Verify(token)
		if err != nil {
			g.deny(w, r, rule, err)
			return
		}
		if rule.Level == RoleOnly && id.Role != rule.Role {
			slog.Warn("Role does not match route", "path", r.URL.Path, "role", id.Role, "required", rule.Role, "user_id", id.UserID)
			g.deny(w, r, rule, apperr.Unauthorized(""))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, rule Rule, err error) {
	metrics.RecordAuthFailure(string(apperr.From(err).Code))
	if rule.Kind == API {
		respond.Error(w, r, err)
		return
	}
	slog.Info("Redirecting to login", "path", r.URL.Path, "reason", apperr.From(err).Code)
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// TokenFromRequest prefers the Authorization bearer token over the cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(auth.Identity)
	return id, ok
}
