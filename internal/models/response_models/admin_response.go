package response_models

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type AdminUserResponse struct {
	ProfileResponse
}

type UserListResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Pagination Pagination          `json:"pagination"`
}

type ServerListResponse struct {
	Servers    []AdminServerResponse `json:"servers"`
	Pagination Pagination            `json:"pagination"`
}

type AdjustCoinsResponse struct {
	PreviousCoins int64 `json:"previous_coins"`
	NewCoins      int64 `json:"new_coins"`
	Difference    int64 `json:"difference"`
}

type ActivityItem struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type StatsResponse struct {
	TotalUsers     int64          `json:"total_users"`
	AdminCount     int64          `json:"admin_count"`
	TotalServers   int64          `json:"total_servers"`
	ActiveServers  int64          `json:"active_servers"`
	ExpiredServers int64          `json:"expired_servers"`
	TotalCoins     int64          `json:"total_coins"`
	TotalReferrals int64          `json:"total_referrals"`
	RecentActivity []ActivityItem `json:"recent_activity"`
}
