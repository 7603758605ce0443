package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cash_ledger/internal/core/ports/services"
	"github.com/SscSPs/cash_ledger/internal/dto"
	"github.com/SscSPs/cash_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// systemJobHandler triggers the daily batch passes by hand.
type systemJobHandler struct {
	batch    portssvc.BatchSvc
	calendar portssvc.Clock
}

func registerSystemJobRoutes(rg *gin.RouterGroup, batch portssvc.BatchSvc, calendar portssvc.Clock) {
	h := &systemJobHandler{batch: batch, calendar: calendar}

	system := rg.Group("/system")
	{
		system.GET("/businessDay", h.businessDay)
		daily := system.Group("/job/daily")
		daily.POST("/closingCashOut", h.closingCashOut)
		daily.POST("/realizeCashflow", h.realizeCashflow)
		daily.POST("/processDay", h.processDay)
		daily.POST("/run", h.runDaily)
	}
}

// closingCashOut godoc
// @Summary Process due cash-in-out requests
// @Tags system
// @Produce  json
// @Success 200 {object} dto.BatchReportResponse
// @Security BearerAuth
// @Router /system/job/daily/closingCashOut [post]
func (h *systemJobHandler) closingCashOut(c *gin.Context) {
	actor, _ := middleware.GetActorFromContext(c)
	report, err := h.batch.CloseCashOut(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Close cash out")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchReportResponse(*report))
}

// realizeCashflow godoc
// @Summary Realize cashflows whose value day is today
// @Tags system
// @Produce  json
// @Success 200 {object} dto.BatchReportResponse
// @Security BearerAuth
// @Router /system/job/daily/realizeCashflow [post]
func (h *systemJobHandler) realizeCashflow(c *gin.Context) {
	actor, _ := middleware.GetActorFromContext(c)
	report, err := h.batch.RealizeCashflows(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Realize cashflows")
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchReportResponse(*report))
}

// processDay godoc
// @Summary Advance the business day
// @Tags system
// @Produce  json
// @Success 200 {object} dto.BusinessDayResponse
// @Security BearerAuth
// @Router /system/job/daily/processDay [post]
func (h *systemJobHandler) processDay(c *gin.Context) {
	actor, _ := middleware.GetActorFromContext(c)
	day, err := h.batch.AdvanceDay(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Advance day")
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessDayResponse(day))
}

// runDaily godoc
// @Summary Run the whole daily batch
// @Description Closes cash out, realizes cashflows and advances the business day, in that order
// @Tags system
// @Produce  json
// @Success 200 {array} dto.BatchReportResponse
// @Security BearerAuth
// @Router /system/job/daily/run [post]
func (h *systemJobHandler) runDaily(c *gin.Context) {
	actor, _ := middleware.GetActorFromContext(c)
	reports, err := h.batch.RunDaily(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Run daily batch")
		return
	}
	res := make([]dto.BatchReportResponse, len(reports))
	for i, r := range reports {
		res[i] = dto.ToBatchReportResponse(r)
	}
	c.JSON(http.StatusOK, res)
}

// businessDay godoc
// @Summary Current business day
// @Tags system
// @Produce  json
// @Success 200 {object} dto.BusinessDayResponse
// @Security BearerAuth
// @Router /system/businessDay [get]
func (h *systemJobHandler) businessDay(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToBusinessDayResponse(h.calendar.Today()))
}
