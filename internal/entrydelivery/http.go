// Package entrydelivery manages delivery layer of the account transaction feed.
package entrydelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/internal/middleware"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
	"github.com/chris7683/CAEAPP/pkg/web"
)

// Service provides service layer interface needed by entry delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package entrydelivery
type Service interface {
	List(ctx context.Context, arg domain.ListEntriesParams) ([]domain.Entry, error)
}

// Handler facilitates entry delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns entry handler.
func NewHandler(es Service) *Handler {
	return &Handler{service: es}
}

type listRequest struct {
	AccountID int64 `form:"account_id" binding:"min=0"`
	PageID    int32 `form:"page_id" binding:"required,min=1,max=100000"`
	PageSize  int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataEntries struct {
	Transactions []domain.Entry `json:"transactions"`
}

// List handles http request to list debits and credits of the requesting user's accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.ListEntriesParams{
		UserID:    middleware.Payload(gctx).UserID,
		AccountID: req.AccountID,
		Limit:     req.PageSize,
		Offset:    (req.PageID - 1) * req.PageSize,
	}

	entries, err := h.service.List(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataEntries{entries}})
}
