// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/internal/domain"
	"github.com/chris7683/CAEAPP/internal/middleware"
	"github.com/chris7683/CAEAPP/pkg/errorspkg"
	"github.com/chris7683/CAEAPP/pkg/moneypkg"
	"github.com/chris7683/CAEAPP/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error)
	Get(ctx context.Context, id int64) (domain.Transfer, error)
	List(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type createRequest struct {
	FromAccountID int64  `json:"from_account_id" binding:"required,min=1"`
	ToAccountID   int64  `json:"to_account_id" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required,amount"`
	Description   string `json:"description" binding:"max=255"`
}

type data struct {
	Transfer domain.Transfer `json:"transfer"`
}

// statusOf maps transfer errors to http status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrBalanceLimit):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, err := moneypkg.ParseAmount(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	arg := domain.CreateTransferParams{
		UserID:        middleware.Payload(gctx).UserID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
		Description:   req.Description,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		status := statusOf(err)

		switch status {
		case http.StatusInternalServerError:
			gctx.JSON(status, web.Error(errorspkg.ErrInternal))
		case http.StatusServiceUnavailable:
			gctx.JSON(status, web.Error(domain.ErrTransferFailed))
		default:
			gctx.JSON(status, web.Error(err))
		}

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{result}})
}

type getRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a transfer made by the requesting user.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	t, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(domain.ErrTransferNotFound))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if t.UserID != middleware.Payload(gctx).UserID {
		l.Warn().Int64("transfer_id", t.ID).Msg("transfer owner mismatch")
		gctx.JSON(http.StatusForbidden, web.Error(domain.ErrTransferOwnerMismatch))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{t}})
}

type listRequest struct {
	AccountID int64 `form:"account_id" binding:"min=0"`
	PageID    int32 `form:"page_id" binding:"required,min=1,max=100000"`
	PageSize  int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}

// List handles http request to list transfers made by the user.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	arg := domain.ListTransfersParams{
		UserID:    middleware.Payload(gctx).UserID,
		AccountID: req.AccountID,
		Limit:     req.PageSize,
		Offset:    (req.PageID - 1) * req.PageSize,
	}

	transfers, err := h.service.List(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransfers{transfers}})
}
