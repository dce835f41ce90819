package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/crm/api/transport"
	"github.com/fastygo/crm/pkg/httpcontext"
	"github.com/fastygo/crm/repository"
	productUC "github.com/fastygo/crm/usecase/product"
)

type ProductHandler struct {
	baseHandler
	uc *productUC.UseCase
}

func NewProductHandler(uc *productUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create product
// @Tags products
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.ProductRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, productUC.CreateInput{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary List products
// @Tags products
// @Router /api/v1/products [get]
func (h *ProductHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	orderByFields, err := repository.ParseOrderBy(queryString(ctx, "order_by"), repository.ProductSortFields)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	filter := repository.ProductFilter{
		NameContains: queryString(ctx, "name"),
		PriceMin:     queryDecimal(ctx, "price_gte"),
		PriceMax:     queryDecimal(ctx, "price_lte"),
		StockEq:      queryIntPtr(ctx, "stock"),
		StockMin:     queryIntPtr(ctx, "stock_gte"),
		StockMax:     queryIntPtr(ctx, "stock_lte"),
		LowStock:     queryBool(ctx, "low_stock"),
		OrderBy:      orderByFields,
		Limit:        parseInt(queryString(ctx, "limit"), 50),
		Offset:       parseInt(queryString(ctx, "offset"), 0),
	}

	products, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, products)
}

// @Summary Get product
// @Tags products
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	product, err := h.uc.Get(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, product)
}

// @Summary Replenish low-stock products
// @Tags products
// @Router /api/v1/products/low-stock/replenish [post]
func (h *ProductHandler) ReplenishLowStock(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, message, err := h.uc.ReplenishLowStock(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.ReplenishResult{
		UpdatedProducts: updated,
		Message:         message,
	})
}
