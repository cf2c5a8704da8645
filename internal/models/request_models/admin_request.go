package request_models

type AdjustCoinsRequest struct {
	Amount      int64  `json:"amount" binding:"min=0"`
	Action      string `json:"action" binding:"required,oneof=add subtract set"`
	Description string `json:"description" binding:"omitempty,max=255"`
}
