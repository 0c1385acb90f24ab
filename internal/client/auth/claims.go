package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/procure/pkg/api"
)

// Клиент не проверяет подпись токена - это делает сервер. Здесь claims
// разбираются только как подсказка: срок действия и профиль пользователя
// до похода за /auth/me.

// TokenExpiry возвращает срок действия access token из exp claim
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiration claim")
	}

	return exp.Time, nil
}

// UserFromToken извлекает профиль пользователя из claims токена
func UserFromToken(token string) (*api.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token has no subject claim: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("subject claim is not a numeric user id: %w", err)
	}

	user := &api.User{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.UserName = name
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = role
	}

	return user, nil
}
