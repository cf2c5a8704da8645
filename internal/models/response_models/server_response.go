package response_models

type ServerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"server_name"`
	CoinsUsed int64   `json:"coins_used"`
	SessionID *string `json:"session_id,omitempty"`
	Status    string  `json:"status"`
	ExpiresAt *int64  `json:"expires_at"`
	CreatedAt int64   `json:"created_at"`
}

type CreateServerResponse struct {
	Server         ServerResponse `json:"server"`
	RemainingCoins int64          `json:"remaining_coins"`
}

type PairingResponse struct {
	PairingCode string `json:"pairing_code"`
	ServerID    string `json:"server_id"`
	PhoneNumber string `json:"phone_number"`
}

type AdminServerResponse struct {
	ServerResponse
	Username string `json:"username"`
	Email    string `json:"email"`
}
