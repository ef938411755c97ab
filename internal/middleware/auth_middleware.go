package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/auth"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextUserKey     = "currentUser"
	ContextSchoolIDKey = "schoolID"
)

// sessionResolver resolves an opaque session token to its user.
type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// SessionToken extracts the session token from the cookie, falling back
// to the header for clients without a cookie jar.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(auth.SessionCookieName); err == nil && token != "" {
		return token
	}
	return c.GetHeader(auth.SessionHeaderName)
}

// SessionAuth authenticates the request through its session cookie and
// stores the user on the context. Requests without a valid session are
// rejected with 401.
func SessionAuth(sessions sessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.Resolve(c.Request.Context(), SessionToken(c))
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by SessionAuth.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// RequireRoles rejects callers whose role is not in the allowed set. The
// 403 body names the required roles and the caller's actual role.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = true
		names = append(names, string(r))
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}
		if !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, &dto.ErrorResponse{
				Message:       "Insufficient role",
				RequiredRoles: names,
				ActualRole:    string(user.Role),
			})
			return
		}
		c.Next()
	}
}

// RequireSchool resolves the tenant for school-scoped routes and stores
// it on the context. Regular users are bound to their own school; a
// superadmin selects one with the schoolId query parameter.
func RequireSchool() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		if user.Role.CrossTenant() {
			raw := c.Query("schoolId")
			if raw == "" {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse("schoolId query parameter is required for superadmin"))
				return
			}
			schoolID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || schoolID <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponse("schoolId must be a positive integer"))
				return
			}
			c.Set(ContextSchoolIDKey, schoolID)
			c.Next()
			return
		}

		if user.SchoolID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("No school assigned to this account"))
			return
		}
		c.Set(ContextSchoolIDKey, *user.SchoolID)
		c.Next()
	}
}

// SchoolID returns the tenant id placed by RequireSchool.
func SchoolID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextSchoolIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
