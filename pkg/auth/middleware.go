// Package auth проверка JWT токенов и прав доступа для gin-сервисов магазина.
// Токены выпускает внешний сервис идентификации, здесь они только проверяются.
package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Ключи контекста gin
const (
	ContextUserID      = "user_id"
	ContextUserName    = "user_name"
	ContextRoleName    = "role_name"
	ContextPermissions = "permissions"
	ContextToken       = "auth_token"
)

// Права доступа
const (
	PermissionManageGames      = "ManageGames"
	PermissionManageGenres     = "ManageGenres"
	PermissionManagePlatforms  = "ManagePlatforms"
	PermissionManagePublishers = "ManagePublishers"
	PermissionManageOrders     = "ManageOrders"
	PermissionModerateComments = "ModerateComments"
)

// JWTClaims структура claims для JWT токена
type JWTClaims struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	RoleName    string   `json:"role_name"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Middleware проверяет JWT токен в запросах
type Middleware struct {
	jwtSecret []byte
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: []byte(jwtSecret)}
}

// Authenticate требует валидный Bearer токен и кладет данные пользователя в контекст
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := m.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}

		c.Set(ContextToken, tokenString)
		c.Set(ContextUserID, userID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextRoleName, claims.RoleName)
		c.Set(ContextPermissions, claims.Permissions)

		c.Next()
	}
}

// Parse проверяет подпись и срок действия токена
func (m *Middleware) Parse(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Sign выпускает токен. Используется в тестах и утилитах разработчика.
func (m *Middleware) Sign(claims JWTClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.jwtSecret)
}

// RequirePermission проверяет наличие права в токене
func (m *Middleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, ok := c.Get(ContextPermissions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		permissions, ok := perms.([]string)
		if !ok || !slices.Contains(permissions, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// UserID достает ID пользователя, установленный Authenticate
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// UserName имя пользователя из токена, пустая строка если его нет
func UserName(c *gin.Context) string {
	return c.GetString(ContextUserName)
}
