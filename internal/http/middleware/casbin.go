package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
)

// CasbinMW enforces role-based access on the admin surface. The subject
// role comes from the caller's user row, not from the token.
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	users    domain.UserRepository
}

// NewCasbinMW creates an RBAC middleware
func NewCasbinMW(enforcer domain.CasbinEnforcer, users domain.UserRepository) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, users: users}
}

// Enforce checks (role_<role>, path, method) against the policy store.
// It assumes the token middleware already ran.
func (m *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		openID := c.GetString(CtxOpenID)
		if openID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": -2, "msg": "not logged in or session expired",
			})
			return
		}

		user, err := m.users.FindByOpenID(c.Request.Context(), openID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": -3, "msg": "forbidden",
			})
			return
		}

		ok, err := m.enforcer.Enforce("role_"+user.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": -3, "msg": "forbidden",
			})
			return
		}

		c.Next()
	}
}
