package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"hostpanel/internal/models/request_models"
	"hostpanel/internal/services"
	"hostpanel/pkg/utils"
)

type ServerController struct {
	serverService services.ServerServiceInterface
}

func NewServerController(serverService services.ServerServiceInterface) *ServerController {
	return &ServerController{
		serverService: serverService,
	}
}

func (s *ServerController) Create(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := s.serverService.CreateServer(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "Server created successfully")
}

func (s *ServerController) ListMine(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	servers, err := s.serverService.ListServers(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"servers": servers}, "")
}

func (s *ServerController) Get(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	serverID, err := uuid.Parse(c.Param("serverId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid server id")
		return
	}

	server, err := s.serverService.GetServer(c.Request.Context(), serverID, accountID, c.GetString("role"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"server": server}, "")
}

func (s *ServerController) Pair(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	serverID, err := uuid.Parse(c.Param("serverId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid server id")
		return
	}

	var req request_models.PairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Valid phone number required")
		return
	}

	result, err := s.serverService.RequestPairing(c.Request.Context(), serverID, accountID, req.PhoneNumber)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "")
}

func (s *ServerController) Stop(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	serverID, err := uuid.Parse(c.Param("serverId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid server id")
		return
	}

	if err := s.serverService.StopServer(c.Request.Context(), serverID, accountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Server stopped successfully")
}

func (s *ServerController) Plans(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"plans": s.serverService.ListPlans()}, "")
}
