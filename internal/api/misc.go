package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/service"
	"github.com/pmarinho/fintrack/internal/storage"
	"github.com/pmarinho/fintrack/internal/ticker"
)

// MiscHandler bundles the smaller endpoint groups: stats, transactions,
// tags, and the raw price passthrough.
type MiscHandler struct {
	stats        service.StatsService
	transactions service.TransactionsService
	tags         service.TagsService
	ticker       ticker.Client
}

// NewMiscHandler constructs a MiscHandler.
func NewMiscHandler(
	stats service.StatsService,
	transactions service.TransactionsService,
	tags service.TagsService,
	tc ticker.Client,
) *MiscHandler {
	return &MiscHandler{stats: stats, transactions: transactions, tags: tags, ticker: tc}
}

// GetStats handles GET /api/v1/stats requests.
//
// GetStats godoc
// @Summary      Summary statistics
// @Description  Per-currency totals, account counts, and type breakdown
// @Tags         stats
// @Produce      json
// @Success      200  {object}  models.StatsSnapshot
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/stats [get]
func (h *MiscHandler) GetStats(c *gin.Context) {
	snapshot, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute stats", err))
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListTransactions handles GET /api/v1/transactions requests.
//
// ListTransactions godoc
// @Summary      List imported transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {array}   dto.TransactionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/transactions [get]
func (h *MiscHandler) ListTransactions(c *gin.Context) {
	txs, err := h.transactions.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list transactions", err))
		return
	}
	c.JSON(http.StatusOK, txs)
}

// ListTags handles GET /api/v1/tags requests.
//
// ListTags godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Success      200  {array}   models.Tag
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/tags [get]
func (h *MiscHandler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list tags", err))
		return
	}
	c.JSON(http.StatusOK, tags)
}

// CreateTag handles POST /api/v1/tags requests.
//
// CreateTag godoc
// @Summary      Create tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        tag  body      dto.CreateTagRequest  true  "Tag"
// @Success      201  {object}  models.Tag
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/tags [post]
func (h *MiscHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid tag payload", err))
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to create tag", err))
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// UpdateTag handles PATCH /api/v1/tags/:id requests.
//
// UpdateTag godoc
// @Summary      Update tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id   path      int                   true  "Tag id"
// @Param        tag  body      dto.UpdateTagRequest  true  "Fields to update"
// @Success      200  {object}  models.Tag
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/tags/{id} [patch]
func (h *MiscHandler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid tag id", err))
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid tag payload", err))
		return
	}

	tag, err := h.tags.Update(c.Request.Context(), id, req)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("tag not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to update tag", err))
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag handles DELETE /api/v1/tags/:id requests.
//
// DeleteTag godoc
// @Summary      Delete tag
// @Tags         tags
// @Param        id  path  int  true  "Tag id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/tags/{id} [delete]
func (h *MiscHandler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid tag id", err))
		return
	}

	err = h.tags.Delete(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("tag not found", nil))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to delete tag", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPrice handles GET /api/v1/prices/:symbol requests.
//
// The symbol is a trading pair ("BTCUSDT"); it is upper-cased before the
// ticker is queried. The response is the extended 24h ticker.
//
// GetPrice godoc
// @Summary      24h ticker stats for a trading pair
// @Tags         prices
// @Produce      json
// @Param        symbol  path      string  true  "Trading pair"  example(BTCUSDT)
// @Success      200     {object}  models.PriceQuote
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/prices/{symbol} [get]
func (h *MiscHandler) GetPrice(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("symbol is required", nil))
		return
	}

	quote, err := h.ticker.Get24hrStats(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("failed to fetch ticker", err))
		return
	}
	c.JSON(http.StatusOK, quote)
}
