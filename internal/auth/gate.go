// Package auth decides whether a request may use the admin area.
//
// Server-rendered admin pages and the admin JSON API share one check,
// Gate.Check, which returns a tagged Decision.  The two middlewares only
// differ in how they answer a refusal: pages redirect to the login screen,
// the API answers 401 or 403.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/revanew/site/internal/db"
	"github.com/revanew/site/internal/metrics"
	"github.com/revanew/site/internal/service"
)

const (
	// LoginPath is where refused page requests are sent.
	LoginPath = "/admin/login"

	sessionUserIDKey = "user_id"
	contextUserKey   = "auth.user"
)

// Result tags the outcome of an admin check.
type Result int

const (
	Unauthorized Result = iota
	Forbidden
	Authorized
)

func (r Result) String() string {
	switch r {
	case Authorized:
		return "authorized"
	case Forbidden:
		return "forbidden"
	default:
		return "unauthorized"
	}
}

// Decision is the result of Gate.Check. User is set for Authorized and Forbidden.
type Decision struct {
	Result Result
	User   *db.User
}

// UserLookup resolves the user stored in the session.
type UserLookup interface {
	Get(ctx context.Context, id uint) (*db.User, error)
}

// Gate checks the session user against the admin role.
type Gate struct {
	users UserLookup
	log   *zap.SugaredLogger
}

// NewGate returns a Gate backed by users.
func NewGate(users UserLookup, log *zap.SugaredLogger) *Gate {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Gate{users: users, log: log}
}

// Check classifies the current request. A missing session, an unknown user or
// a failed lookup are Unauthorized; a known user without the admin role is Forbidden.
func (g *Gate) Check(c *gin.Context) Decision {
	decision := g.check(c)
	metrics.GateDecisions.WithLabelValues(decision.Result.String()).Inc()
	return decision
}

func (g *Gate) check(c *gin.Context) Decision {
	id := sessionUserID(sessions.Default(c).Get(sessionUserIDKey))
	if id == 0 {
		return Decision{Result: Unauthorized}
	}

	user, err := g.users.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			g.log.Warnw("admin gate user lookup failed", "user_id", id, "err", err)
		}
		return Decision{Result: Unauthorized}
	}
	if !user.IsAdmin() {
		return Decision{Result: Forbidden, User: user}
	}
	return Decision{Result: Authorized, User: user}
}

// RequireAdminPage guards server-rendered admin pages. Any refusal redirects
// to the login page and aborts the chain; a forbidden session is also cleared.
func (g *Gate) RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Check(c)
		if decision.Result != Authorized {
			if decision.Result == Forbidden {
				Logout(c)
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(contextUserKey, decision.User)
		c.Next()
	}
}

// RequireAdminAPI guards admin JSON routes with 401 and 403 responses.
func (g *Gate) RequireAdminAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Check(c)
		switch decision.Result {
		case Authorized:
			c.Set(contextUserKey, decision.User)
			c.Next()
		case Forbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		}
	}
}

// CurrentUser returns the user stored by one of the Require middlewares.
func CurrentUser(c *gin.Context) *db.User {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*db.User)
	return user
}

// Actor returns the username recorded in audit columns.
func Actor(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.Username
	}
	return ""
}

// Login stores user in the session.
func Login(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserIDKey, user.ID)
	return session.Save()
}

// Logout clears the session.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
}

func sessionUserID(raw interface{}) uint {
	switch v := raw.(type) {
	case uint:
		return v
	case uint64:
		return uint(v)
	case int:
		if v > 0 {
			return uint(v)
		}
	case int64:
		if v > 0 {
			return uint(v)
		}
	}
	return 0
}
