package api

// User представляет текущего аутентифицированного пользователя
type User struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ на успешный логин
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`  // JWT access token
	RefreshToken string `json:"refreshToken"` // refresh token
	ExpiresIn    int64  `json:"expiresIn"`    // время жизни access token в секундах
	User         User   `json:"user"`
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse представляет ответ с новой парой токенов
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}
