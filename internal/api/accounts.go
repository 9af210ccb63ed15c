package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/domain/models"
	"github.com/pmarinho/fintrack/internal/service"
	"github.com/pmarinho/fintrack/internal/storage"
)

// AccountsHandler provides HTTP handlers for the accounts endpoints.
//
// Responsibilities:
//   - Validate incoming payloads and path parameters
//   - Delegate to the accounts service
//   - Translate service results and errors into JSON responses
type AccountsHandler struct {
	svc service.AccountsService
}

// NewAccountsHandler constructs a new AccountsHandler instance.
func NewAccountsHandler(svc service.AccountsService) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

// List handles GET /api/v1/accounts requests.
//
// The response carries every account with its normalized value. A failed
// price lookup for one crypto account degrades that single account to its
// native balance; it never turns the listing into a 5xx.
//
// List godoc
// @Summary      List accounts
// @Description  Returns all accounts with balances normalized to EUR
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   dto.AccountResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts [get]
func (h *AccountsHandler) List(c *gin.Context) {
	accounts, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list accounts", err))
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Create handles POST /api/v1/accounts requests.
//
// Create godoc
// @Summary      Create account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        account  body      dto.CreateAccountRequest  true  "Account"
// @Success      201      {object}  models.Account
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/accounts [post]
func (h *AccountsHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid account payload", err))
		return
	}
	if !models.ValidAccountType(models.AccountType(req.AccountType)) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown accountType", nil))
		return
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))

	acct, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to create account", err))
		return
	}
	c.JSON(http.StatusCreated, acct)
}

// Get handles GET /api/v1/accounts/:id requests.
//
// Get godoc
// @Summary      Get account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  models.Account
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id} [get]
func (h *AccountsHandler) Get(c *gin.Context) {
	acct, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch account", err))
		return
	}
	c.JSON(http.StatusOK, acct)
}

// Update handles PATCH /api/v1/accounts/:id requests.
//
// Update godoc
// @Summary      Update account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Account id"
// @Param        account  body      dto.UpdateAccountRequest  true  "Fields to update"
// @Success      200      {object}  models.Account
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id} [patch]
func (h *AccountsHandler) Update(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid account payload", err))
		return
	}
	if req.AccountType != nil && !models.ValidAccountType(models.AccountType(*req.AccountType)) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown accountType", nil))
		return
	}
	if req.Currency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*req.Currency))
		req.Currency = &cur
	}

	acct, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update account", err))
		return
	}
	c.JSON(http.StatusOK, acct)
}

// Delete handles DELETE /api/v1/accounts/:id requests.
//
// Delete godoc
// @Summary      Delete account
// @Tags         accounts
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id} [delete]
func (h *AccountsHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to delete account", err))
		return
	}
	c.Status(http.StatusNoContent)
}
