package types

type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	City     string `json:"city"`
}

type LoginResponse struct {
	UserID       uint64 `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

const DefaultPageSize = 20
