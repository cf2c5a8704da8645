package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"hostpanel/internal/models/request_models"
	"hostpanel/internal/services"
	"hostpanel/pkg/utils"
)

type AdminController struct {
	adminService  services.AdminServiceInterface
	ledgerService services.LedgerServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface, ledgerService services.LedgerServiceInterface) *AdminController {
	return &AdminController{
		adminService:  adminService,
		ledgerService: ledgerService,
	}
}

func (a *AdminController) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := a.adminService.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "")
}

func (a *AdminController) AdjustCoins(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req request_models.AdjustCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := a.ledgerService.AdjustByAdmin(
		c.Request.Context(),
		userID,
		services.AdminAction(req.Action),
		req.Amount,
		req.Description,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Coins updated successfully")
}

func (a *AdminController) ListServers(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := a.adminService.ListServers(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "")
}

func (a *AdminController) ForceExpire(c *gin.Context) {
	serverID, err := uuid.Parse(c.Param("serverId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid server id")
		return
	}

	server, err := a.adminService.ForceExpireServer(c.Request.Context(), serverID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"server": server}, "Server force expired")
}

func (a *AdminController) DeleteServer(c *gin.Context) {
	serverID, err := uuid.Parse(c.Param("serverId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid server id")
		return
	}

	if err := a.adminService.DeleteServer(c.Request.Context(), serverID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Server deleted successfully")
}

func (a *AdminController) Stats(c *gin.Context) {
	stats, err := a.adminService.GetStats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stats, "")
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
