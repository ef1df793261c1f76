package middleware

import (
	"fmt"
	"strings"
	"time"

	"tithe/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// Claims 自定义 JWT 载荷。单用户系统，只记用户名
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// InitJWT 初始化 JWT 密钥
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
}

// GenerateToken 签发 token
func GenerateToken(username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 解析并校验 token
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("无效的 token")
	}
	return claims, nil
}

// JWTAuth JWT 鉴权中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(401, gin.H{"code": 401, "message": "请先登录"})
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(401, gin.H{"code": 401, "message": "认证格式错误"})
			c.Abort()
			return
		}
		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.JSON(401, gin.H{"code": 401, "message": "token 无效或已过期"})
			c.Abort()
			return
		}
		c.Set("username", claims.Username)
		c.Next()
	}
}

// GetCurrentUser 从上下文取当前用户名
func GetCurrentUser(c *gin.Context) string {
	if v, exists := c.Get("username"); exists {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
