package response_models

type PlanResponse struct {
	Index         int    `json:"index"`
	Coins         int64  `json:"coins"`
	DurationHours *int   `json:"duration"`
	Label         string `json:"label"`
}
