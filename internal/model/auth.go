package model

// LoginRequest はログインAPIのリクエストDTO
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンスDTO
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
