package response_models

type AccountResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Coins        int64  `json:"coins"`
	ReferralCode string `json:"referral_code"`
}

type ProfileResponse struct {
	AccountResponse
	ReferredBy    *string `json:"referred_by,omitempty"`
	ReferralCount int64   `json:"referral_count"`
	CreatedAt     int64   `json:"created_at"`
}

type AuthResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}
