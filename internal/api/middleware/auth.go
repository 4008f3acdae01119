package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/social-feed/pkg/response"
)

const (
	UserIDKey     = "user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var ErrInvalidToken = errors.New("invalid token")

// Claims token 由外部认证服务签发，这里只校验
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// Auth 用共享密钥校验 HS256 token，解析出数字用户 id
type Auth struct {
	secret []byte
	issuer string
}

func NewAuth(secret, issuer string) *Auth {
	return &Auth{secret: []byte(secret), issuer: issuer}
}

// Parse 校验签名、过期与 issuer；user_id 缺失时回退到 sub
func (a *Auth) Parse(tokenString string) (int64, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return 0, ErrInvalidToken
	}

	id := claims.UserID
	if id == 0 && claims.Subject != "" {
		id, err = strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return 0, ErrInvalidToken
		}
	}
	if id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// RequireAuth 无有效 token 返回 401
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}
		id, err := a.Parse(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(UserIDKey, id)
		c.Next()
	}
}

// OptionalAuth 有合法 token 时设置用户，否则按匿名继续
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if id, err := a.Parse(token); err == nil {
				c.Set(UserIDKey, id)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(h, BearerPrefix) {
		return "", false
	}
	t := strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
	return t, t != ""
}

// GetUserID 匿名请求返回 (0, false)
func GetUserID(c *gin.Context) (int64, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}
