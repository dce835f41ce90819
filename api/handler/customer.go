package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/crm/api/transport"
	"github.com/fastygo/crm/pkg/httpcontext"
	"github.com/fastygo/crm/repository"
	customerUC "github.com/fastygo/crm/usecase/customer"
)

type CustomerHandler struct {
	baseHandler
	uc *customerUC.UseCase
}

func NewCustomerHandler(uc *customerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create customer
// @Tags customers
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.CustomerRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, message, err := h.uc.Create(stdCtx, customerUC.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.CustomerResult{
		Customer: created,
		Message:  message,
	})
}

// @Summary Bulk create customers
// @Tags customers
// @Router /api/v1/customers/bulk [post]
func (h *CustomerHandler) BulkCreate(ctx *fasthttp.RequestCtx) {
	var req transport.BulkCustomersRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	inputs := make([]customerUC.CreateInput, len(req.Customers))
	for i, record := range req.Customers {
		inputs[i] = customerUC.CreateInput{
			Name:  record.Name,
			Email: record.Email,
			Phone: record.Phone,
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, errorList, err := h.uc.BulkCreate(stdCtx, inputs)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.BulkCustomersResult{
		Customers: created,
		Errors:    errorList,
	})
}

// @Summary List customers
// @Tags customers
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	orderByFields, err := repository.ParseOrderBy(queryString(ctx, "order_by"), repository.CustomerSortFields)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	filter := repository.CustomerFilter{
		NameContains:  queryString(ctx, "name"),
		EmailContains: queryString(ctx, "email"),
		PhonePrefix:   queryString(ctx, "phone"),
		CreatedFrom:   queryTime(ctx, "created_at_gte"),
		CreatedTo:     queryTime(ctx, "created_at_lte"),
		OrderBy:       orderByFields,
		Limit:         parseInt(queryString(ctx, "limit"), 50),
		Offset:        parseInt(queryString(ctx, "offset"), 0),
	}

	customers, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, customers)
}

// @Summary Get customer
// @Tags customers
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	customer, err := h.uc.Get(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, customer)
}

// @Summary Count customers
// @Tags customers
// @Router /api/v1/customers/count [get]
func (h *CustomerHandler) Count(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.uc.Count(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.CountResult{Count: count})
}
