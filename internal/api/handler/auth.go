package handler

import (
	"net/http"
	"strings"
	"time"

	"duetchat/backend/internal/apperrors"
	"duetchat/backend/internal/config"
	"duetchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// roleContextKey is where the middleware stores the authenticated identity.
const roleContextKey = "userRole"

// generateJWT issues a token for one of the two chat identities.
func (h *Handler) generateJWT(role string) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(config.TokenTTL).Unix(),
		"iss":  config.JWTIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.JWTSecret))
}

// parseRole validates a token string and extracts the identity claim.
func (h *Handler) parseRole(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)
	if !models.ValidRole(role) {
		return "", jwt.ErrTokenInvalidClaims
	}
	return role, nil
}

// Login exchanges an identity and its passcode for a JWT.
func (h *Handler) Login(c *gin.Context) {
	var body struct {
		Role     string `json:"role"`
		Passcode string `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, apperrors.NewValidation("body", "invalid JSON payload"))
		return
	}

	if !models.ValidRole(body.Role) {
		h.respondError(c, apperrors.NewValidation("role", "must be \"A\" or \"B\""))
		return
	}
	if body.Passcode == "" || body.Passcode != h.Config.Passcode(body.Role) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Invalid passcode",
			"code":    apperrors.CodeUnauthorized,
		})
		return
	}

	token, err := h.generateJWT(body.Role)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create token",
			"code":    apperrors.CodeInternal,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "role": body.Role})
}

// AuthRequired enforces a bearer token on private routes and stores the
// authenticated identity in the request context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authorization token missing",
				"code":    apperrors.CodeUnauthorized,
			})
			return
		}

		role, err := h.parseRole(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
				"code":    apperrors.CodeUnauthorized,
			})
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

// bearerToken pulls the token from the Authorization header or, for
// WebSocket upgrades where headers are awkward, the token query parameter.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// viewerRole returns the authenticated identity set by AuthRequired.
func viewerRole(c *gin.Context) string {
	return c.GetString(roleContextKey)
}
