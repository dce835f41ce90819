package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/crm/api/transport"
	"github.com/fastygo/crm/domain"
	"github.com/fastygo/crm/pkg/httpcontext"
	"github.com/fastygo/crm/repository"
	orderUC "github.com/fastygo/crm/usecase/order"
)

type OrderHandler struct {
	baseHandler
	uc *orderUC.UseCase
}

func NewOrderHandler(uc *orderUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create order
// @Tags orders
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.OrderRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	var orderDate time.Time
	if req.OrderDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.OrderDate)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "order_date must be RFC3339", nil))
			return
		}
		orderDate = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, orderUC.CreateInput{
		CustomerID: req.CustomerID,
		ProductIDs: req.ProductIDs,
		OrderDate:  orderDate,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary List orders
// @Tags orders
// @Router /api/v1/orders [get]
func (h *OrderHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	orderByFields, err := repository.ParseOrderBy(queryString(ctx, "order_by"), repository.OrderSortFields)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	filter := repository.OrderFilter{
		CustomerNameContains: queryString(ctx, "customer_name"),
		ProductNameContains:  queryString(ctx, "product_name"),
		ProductID:            queryString(ctx, "product_id"),
		TotalMin:             queryDecimal(ctx, "total_amount_gte"),
		TotalMax:             queryDecimal(ctx, "total_amount_lte"),
		DateFrom:             queryTime(ctx, "order_date_gte"),
		DateTo:               queryTime(ctx, "order_date_lte"),
		OrderBy:              orderByFields,
		Limit:                parseInt(queryString(ctx, "limit"), 50),
		Offset:               parseInt(queryString(ctx, "offset"), 0),
	}

	orders, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, orders)
}

// @Summary Get order
// @Tags orders
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	order, err := h.uc.Get(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, order)
}

// @Summary Count orders
// @Tags orders
// @Router /api/v1/orders/count [get]
func (h *OrderHandler) Count(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.uc.Count(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.CountResult{Count: count})
}
