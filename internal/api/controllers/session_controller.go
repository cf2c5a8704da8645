package controllers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"hostpanel/pkg/pairing"
	"hostpanel/pkg/utils"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// SessionController is an authenticated passthrough to the external
// pairing service, independent of any server row.
type SessionController struct {
	pairing pairing.Client
}

func NewSessionController(pairingClient pairing.Client) *SessionController {
	return &SessionController{
		pairing: pairingClient,
	}
}

func (s *SessionController) Pair(c *gin.Context) {
	phoneNumber := c.Param("phoneNumber")
	if !digitsOnly.MatchString(phoneNumber) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	result, err := s.pairing.Pair(c.Request.Context(), phoneNumber)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, "Failed to connect to pairing service")
		return
	}

	utils.RespondSuccess(c, result, "")
}

func (s *SessionController) Stop(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session id required")
		return
	}

	if err := s.pairing.Stop(c.Request.Context(), sessionID); err != nil {
		utils.RespondError(c, http.StatusBadGateway, "Failed to stop session")
		return
	}

	utils.RespondSuccess(c, nil, "Session stopped")
}
