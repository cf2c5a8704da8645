package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"hostpanel/internal/models/request_models"
	"hostpanel/internal/services"
	"hostpanel/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	ledgerService  services.LedgerServiceInterface
}

func NewAccountController(
	accountService services.AccountServiceInterface,
	ledgerService services.LedgerServiceInterface,
) *AccountController {
	return &AccountController{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// Signup godoc
// @Summary Register a new account
// @Description Create an account, grant the signup bonus and run the referral cascade
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Signup payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/signup [post]
func (a *AccountController) Signup(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := a.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "User created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

// Tokens are stateless; logout is a client-side discard.
func (a *AccountController) Logout(c *gin.Context) {
	utils.RespondSuccess(c, nil, "Logged out successfully")
}

func (a *AccountController) Me(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	profile, err := a.accountService.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "")
}

// Transactions godoc
// @Summary List the caller's coin transactions
// @Description Return the account's ledger entries newest-first with the replayed balance
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/transactions [get]
func (a *AccountController) Transactions(c *gin.Context) {
	accountID, ok := CallerAccountID(c)
	if !ok {
		return
	}

	history, err := a.ledgerService.GetHistory(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "")
}

// CallerAccountID pulls the authenticated account id set by the JWT
// middleware, responding 401 itself when it is missing or mangled.
func CallerAccountID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("account_id")
	accountID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid session")
		return uuid.Nil, false
	}
	return accountID, true
}
