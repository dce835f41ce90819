package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/crm/internal/infrastructure/joblog"
	"github.com/fastygo/crm/pkg/httpcontext"
)

type JobLogHandler struct {
	baseHandler
	store *joblog.Store
}

func NewJobLogHandler(store *joblog.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *JobLogHandler {
	return &JobLogHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Recent job log lines
// @Tags jobs
// @Router /api/v1/jobs/{job}/log [get]
func (h *JobLogHandler) Recent(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, _ := ctx.UserValue("job").(string)
	entries, err := h.store.Recent(job, parseInt(queryString(ctx, "limit"), 50))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, entries)
}
