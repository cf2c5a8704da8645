package request_models

type CreateServerRequest struct {
	ServerName string `json:"serverName" binding:"required,min=3,max=100"`
	// Bounds against the plan catalog are checked by the service.
	PlanIndex int `json:"planIndex" binding:"min=0"`
}

type PairingRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}
