package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/helpers"
)

// BillingController handles fees, invoices and payments.
type BillingController struct {
	billingService *services.BillingService
}

// NewBillingController creates a new BillingController
func NewBillingController(billingService *services.BillingService) *BillingController {
	return &BillingController{billingService: billingService}
}

// CreateFee adds a fee catalog entry
// @Summary Create fee
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.CreateFeeRequest true "Fee data"
// @Success 201 {object} models.Fee
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /fees [post]
func (c *BillingController) CreateFee(ctx *gin.Context) {
	var req dto.CreateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	fee, err := c.billingService.CreateFee(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, fee)
}

// GetFee retrieves a fee
// @Summary Get fee
// @Tags billing
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} models.Fee
// @Failure 404 {object} dto.ErrorResponse "Fee not found"
// @Router /fees/{id} [get]
func (c *BillingController) GetFee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	fee, err := c.billingService.GetFee(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fee)
}

// ListFees retrieves fees
// @Summary List fees
// @Tags billing
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Name search"
// @Param schoolYear query string false "School year filter"
// @Success 200 {object} dto.ListResponse
// @Router /fees [get]
func (c *BillingController) ListFees(ctx *gin.Context) {
	filter := parseFilter(ctx)

	fees, total, err := c.billingService.ListFees(ctx.Request.Context(), middleware.SchoolID(ctx), filter, ctx.Query("schoolYear"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(fees, total, filter.Page, filter.Limit))
}

// UpdateFee partially updates a fee
// @Summary Update fee
// @Tags billing
// @Accept json
// @Produce json
// @Param id path int true "Fee ID"
// @Param request body dto.UpdateFeeRequest true "Fields to change"
// @Success 200 {object} models.Fee
// @Failure 404 {object} dto.ErrorResponse "Fee not found"
// @Router /fees/{id} [put]
func (c *BillingController) UpdateFee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateFeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	fee, err := c.billingService.UpdateFee(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, fee)
}

// DeleteFee removes a fee
// @Summary Delete fee
// @Description Fails with 400 while invoices still reference the fee
// @Tags billing
// @Produce json
// @Param id path int true "Fee ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Fee not found"
// @Failure 400 {object} dto.ErrorResponse "Fee is referenced by invoices"
// @Router /fees/{id} [delete]
func (c *BillingController) DeleteFee(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.billingService.DeleteFee(ctx.Request.Context(), middleware.SchoolID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Fee deleted"})
}

// CreateInvoice bills a student
// @Summary Create invoice
// @Description The invoice number is generated server-side
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} models.Invoice
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Student or fee not found"
// @Router /invoices [post]
func (c *BillingController) CreateInvoice(ctx *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	invoice, err := c.billingService.CreateInvoice(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, invoice)
}

// GetInvoice retrieves an invoice
// @Summary Get invoice
// @Tags billing
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Router /invoices/{id} [get]
func (c *BillingController) GetInvoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	invoice, err := c.billingService.GetInvoice(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, invoice)
}

// ListInvoices retrieves invoices
// @Summary List invoices
// @Tags billing
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Invoice number search"
// @Param status query string false "Status filter"
// @Param studentId query int false "Student filter"
// @Success 200 {object} dto.ListResponse
// @Router /invoices [get]
func (c *BillingController) ListInvoices(ctx *gin.Context) {
	filter := parseFilter(ctx)
	studentID, ok := queryInt64Ptr(ctx, "studentId")
	if !ok {
		return
	}

	invoices, total, err := c.billingService.ListInvoices(ctx.Request.Context(), middleware.SchoolID(ctx), filter, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewListResponse(invoices, total, filter.Page, filter.Limit))
}

// UpdateInvoice changes invoice metadata or cancels it
// @Summary Update invoice
// @Description Paid status is never set directly; it follows from payments
// @Tags billing
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 200 {object} models.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 400 {object} dto.ErrorResponse "Invoice can no longer be modified"
// @Router /invoices/{id} [put]
func (c *BillingController) UpdateInvoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	invoice, err := c.billingService.UpdateInvoice(ctx.Request.Context(), middleware.SchoolID(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, invoice)
}

// MarkOverdue flips open invoices past their due date to overdue
// @Summary Mark overdue invoices
// @Tags billing
// @Produce json
// @Success 200 {object} dto.MarkOverdueResponse
// @Router /invoices/mark-overdue [post]
func (c *BillingController) MarkOverdue(ctx *gin.Context) {
	updated, err := c.billingService.MarkOverdue(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MarkOverdueResponse{Updated: updated})
}

// RecordPayment records money against an invoice
// @Summary Record payment
// @Description The invoice flips to paid once payments cover its amount
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Payment data"
// @Success 201 {object} models.Payment
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 400 {object} dto.ErrorResponse "Invoice can no longer accept payments"
// @Router /payments [post]
func (c *BillingController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	payment, err := c.billingService.RecordPayment(ctx.Request.Context(), middleware.SchoolID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, payment)
}

// ListPayments retrieves the payments of an invoice
// @Summary List payments
// @Tags billing
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {array} models.Payment
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Router /invoices/{id}/payments [get]
func (c *BillingController) ListPayments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	payments, err := c.billingService.ListPayments(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, payments)
}
