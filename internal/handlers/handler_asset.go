package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/dto"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assetHandler serves the account holder's own requests and balances.
type assetHandler struct {
	cioService     portssvc.CashInOutSvcFacade
	balanceService portssvc.CashBalanceSvc
}

func newAssetHandler(cs portssvc.CashInOutSvcFacade, bs portssvc.CashBalanceSvc) *assetHandler {
	return &assetHandler{cioService: cs, balanceService: bs}
}

// registerAssetRoutes registers the account holder routes. withdrawLimit guards
// request submission only.
func registerAssetRoutes(rg *gin.RouterGroup, cs portssvc.CashInOutSvcFacade, bs portssvc.CashBalanceSvc, withdrawLimit gin.HandlerFunc) {
	h := newAssetHandler(cs, bs)

	asset := rg.Group("/asset")
	{
		asset.POST("/cio/withdraw", withdrawLimit, h.withdraw)
		asset.GET("/cio/unprocessed", h.listUnprocessed)
		asset.POST("/cio/:id/cancel", h.cancel)
		asset.GET("/balance/:currency", h.getBalance)
	}
}

// withdraw godoc
// @Summary Request a withdrawal
// @Description Registers a withdrawal from the caller's account after checking available funds
// @Tags asset
// @Accept  json
// @Produce  json
// @Param   request body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or insufficient funds"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Security BearerAuth
// @Router /asset/cio/withdraw [post]
func (h *assetHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cio, err := h.cioService.Withdraw(c.Request.Context(), actor, req.ToReg(actor.ID))
	if err != nil {
		respondError(c, err, "Withdraw")
		return
	}

	logger.Info("Withdrawal accepted", slog.String("cash_in_out_id", cio.CashInOutID))
	c.JSON(http.StatusCreated, dto.IDResponse{ID: cio.CashInOutID})
}

// listUnprocessed godoc
// @Summary List pending requests
// @Description Lists the caller's cash-in-out requests that have not been processed yet, most recent first
// @Tags asset
// @Produce  json
// @Success 200 {array} dto.CashInOutResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /asset/cio/unprocessed [get]
func (h *assetHandler) listUnprocessed(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cios, err := h.cioService.FindUnprocessed(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err, "List requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashInOutResponses(cios))
}

// cancel godoc
// @Summary Cancel a withdrawal
// @Description Cancels one of the caller's requests while its event day is still ahead
// @Tags asset
// @Produce  json
// @Param   id path string true "Cash-in-out ID"
// @Success 200 {object} dto.CashInOutResponse
// @Failure 400 {object} dto.ErrorResponse "Too late to cancel or not the caller's request"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Security BearerAuth
// @Router /asset/cio/{id}/cancel [post]
func (h *assetHandler) cancel(c *gin.Context) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cio, err := h.cioService.CancelWithdrawal(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Cancel request")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashInOutResponse(*cio))
}

// getBalance godoc
// @Summary Get cash balance
// @Description Returns the caller's realized cash balance in one currency
// @Tags asset
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency"
// @Security BearerAuth
// @Router /asset/balance/{currency} [get]
func (h *assetHandler) getBalance(c *gin.Context) {
	currency := strings.ToUpper(c.Param("currency"))
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Currency code must be 3 letters"})
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.balanceService.Balance(c.Request.Context(), actor.ID, currency)
	if err != nil {
		respondError(c, err, "Get balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(*balance))
}
