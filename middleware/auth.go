package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automotora-api/auth"
	"automotora-api/utils"
)

// routePolicy declares which methods under a path prefix need a token.
type routePolicy struct {
	prefix  string
	methods []string
}

// protectedRoutes is the whole authorization policy: reads on vehicles
// and inquiry submission stay public, everything that mutates state or
// exposes customer data requires a valid token. Role is carried into
// the context but not consulted; any authenticated account passes.
var protectedRoutes = []routePolicy{
	{prefix: "/api/vehiculos", methods: []string{http.MethodPost, http.MethodPut, http.MethodDelete}},
	{prefix: "/api/consultas", methods: []string{http.MethodGet, http.MethodPut, http.MethodDelete}},
	{prefix: "/api/upload", methods: []string{http.MethodPost}},
}

func requiresAuth(path, method string) bool {
	for _, p := range protectedRoutes {
		if len(path) >= len(p.prefix) && path[:len(p.prefix)] == p.prefix {
			for _, m := range p.methods {
				if m == method {
					return true
				}
			}
			return false
		}
	}
	return false
}

// AccessGate enforces the protected-routes table on every request.
// For unprotected requests that still carry a valid token, the identity
// is placed in the context so handlers can tell staff from the public.
func AccessGate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractToken(c.GetHeader("Authorization"))

		if !requiresAuth(c.Request.URL.Path, c.Request.Method) {
			if token != "" {
				if claims, err := auth.VerifyToken(jwtSecret, token); err == nil {
					setIdentity(c, claims)
				}
			}
			c.Next()
			return
		}

		if token == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, "No autorizado. Token requerido.")
			return
		}

		claims, err := auth.VerifyToken(jwtSecret, token)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_rol", claims.Role)
}

// IsAuthenticated reports whether the gate attached an identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := c.Get("user_id")
	return ok
}
