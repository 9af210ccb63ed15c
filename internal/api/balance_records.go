package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/service"
	"github.com/pmarinho/fintrack/internal/storage"
)

// BalanceRecordsHandler provides HTTP handlers for balance snapshots and
// the timeline built from them.
type BalanceRecordsHandler struct {
	svc service.BalanceRecordsService
}

// NewBalanceRecordsHandler constructs a new BalanceRecordsHandler instance.
func NewBalanceRecordsHandler(svc service.BalanceRecordsService) *BalanceRecordsHandler {
	return &BalanceRecordsHandler{svc: svc}
}

// List handles GET /api/v1/balance-records requests.
//
// List godoc
// @Summary      List balance records
// @Description  Returns all snapshots with EUR values where conversion applies
// @Tags         balance-records
// @Produce      json
// @Success      200  {array}   dto.BalanceRecordResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/balance-records [get]
func (h *BalanceRecordsHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list balance records", err))
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListByAccount handles GET /api/v1/balance-records/account/:accountId.
//
// ListByAccount godoc
// @Summary      List one account's balance records
// @Tags         balance-records
// @Produce      json
// @Param        accountId  path      string  true  "Account id"
// @Success      200        {array}   dto.BalanceRecordResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      500        {object}  dto.ErrorResponse
// @Router       /api/v1/balance-records/account/{accountId} [get]
func (h *BalanceRecordsHandler) ListByAccount(c *gin.Context) {
	records, err := h.svc.ListByAccount(c.Request.Context(), c.Param("accountId"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list balance records", err))
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /api/v1/balance-records requests.
//
// Creating a snapshot also overwrites the owning account's cached balance
// and lastUpdated in the same transaction.
//
// Create godoc
// @Summary      Create balance record
// @Tags         balance-records
// @Accept       json
// @Produce      json
// @Param        record  body      dto.CreateBalanceRecordRequest  true  "Snapshot"
// @Success      201     {object}  dto.BalanceRecordResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/v1/balance-records [post]
func (h *BalanceRecordsHandler) Create(c *gin.Context) {
	var req dto.CreateBalanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid balance record payload", err))
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), req)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to create balance record", err))
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Delete handles DELETE /api/v1/balance-records/:id requests.
//
// Delete godoc
// @Summary      Delete balance record
// @Tags         balance-records
// @Param        id  path  string  true  "Record id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/balance-records/{id} [delete]
func (h *BalanceRecordsHandler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("balance record not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to delete balance record", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Timeline handles GET /api/v1/timeline requests.
//
// Each point covers one observed record date; accounts without a record on a
// date carry their last known value forward and are absent before their
// first observation.
//
// Timeline godoc
// @Summary      Normalized balance timeline
// @Tags         balance-records
// @Produce      json
// @Success      200  {array}   dto.TimelinePoint
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/timeline [get]
func (h *BalanceRecordsHandler) Timeline(c *gin.Context) {
	points, err := h.svc.Timeline(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to build timeline", err))
		return
	}
	c.JSON(http.StatusOK, points)
}
