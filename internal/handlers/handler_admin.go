package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/dto"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type adminHandler struct {
	cioService portssvc.CashInOutSvcFacade
}

func registerAdminRoutes(rg *gin.RouterGroup, cs portssvc.CashInOutSvcFacade) {
	h := &adminHandler{cioService: cs}

	admin := rg.Group("/admin")
	{
		admin.POST("/asset/cio/deposit", h.deposit)
		admin.GET("/cio", h.search)
	}
}

// deposit godoc
// @Summary Register a deposit
// @Description Registers an incoming transfer for an account. It is credited when processed on its event day.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   request body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.IDResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/asset/cio/deposit [post]
func (h *adminHandler) deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cio, err := h.cioService.Deposit(c.Request.Context(), actor, req.ToReg())
	if err != nil {
		respondError(c, err, "Deposit")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Deposit registered",
		slog.String("cash_in_out_id", cio.CashInOutID),
		slog.String("account_id", cio.AccountID))
	c.JSON(http.StatusCreated, dto.IDResponse{ID: cio.CashInOutID})
}

// search godoc
// @Summary Search cash-in-out requests
// @Description Reporting search over all accounts, most recently updated first
// @Tags admin
// @Produce  json
// @Param   currency query string false "Currency Code"
// @Param   status query []string false "Statuses" collectionFormat(multi)
// @Param   updatedFrom query string false "Lower bound of last update (RFC 3339)"
// @Param   updatedTo query string false "Upper bound of last update (RFC 3339)"
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCashInOutResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /admin/cio [get]
func (h *adminHandler) search(c *gin.Context) {
	var params dto.SearchCashInOutParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	cios, next, err := h.cioService.Search(c.Request.Context(), params.ToCriteria())
	if err != nil {
		respondError(c, err, "Search requests")
		return
	}
	c.JSON(http.StatusOK, dto.ListCashInOutResponse{Items: dto.ToCashInOutResponses(cios), NextToken: next})
}
