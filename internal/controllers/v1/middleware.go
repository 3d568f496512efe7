package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/caixinhas/backend/internal/models"
)

const contextUserID = "userID"

// requireAuth verifies the bearer token of the request and stores the ID of
// the authenticated user in the gin context. Requests with a missing or
// invalid token are aborted with 401, including tokens for users that have
// been deleted since the token was issued. OPTIONS requests pass through
// unauthenticated.
func (co *Controller) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Preflight requests carry no Authorization header
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errNoToken.Error()})
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
			func(_ *jwt.Token) (any, error) {
				return []byte(co.jwt.Secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errInvalidToken.Error()})
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errInvalidToken.Error()})
			return
		}

		id, err := uuid.Parse(subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errInvalidToken.Error()})
			return
		}

		var user models.User
		err = co.db.First(&user, "id = ?", id).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: errInvalidToken.Error()})
			return
		}

		c.Set(contextUserID, user.ID)
		c.Next()
	}
}

// userID returns the ID of the authenticated user. Only valid on routes
// behind requireAuth.
func userID(c *gin.Context) uuid.UUID {
	return c.MustGet(contextUserID).(uuid.UUID)
}
