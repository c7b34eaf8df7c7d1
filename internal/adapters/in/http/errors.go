package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/promotion"
	"fulfillment/internal/core/domain/model/voucher"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use-case error onto a status code. Rule violations the
// caller can correct are 4xx; anything unrecognized is a 500 with a generic
// message so no internal detail leaks.
func domainError(ctx echo.Context, err error) error {
	code := statusFromError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal error"
	}

	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: message,
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, voucher.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, delivery.ErrInvalidStatus),
		errors.Is(err, delivery.ErrAlreadyAssigned),
		errors.Is(err, delivery.ErrShipperBusy),
		errors.Is(err, delivery.ErrAnotherOrderInProgress),
		errors.Is(err, voucher.ErrVoucherAlreadyUsed),
		errors.Is(err, promotion.ErrPromotionAlreadyApplied),
		errors.Is(err, catalog.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, voucher.ErrVoucherExpired),
		errors.Is(err, voucher.ErrVoucherNotAssigned),
		errors.Is(err, voucher.ErrVoucherMinimumAmountNotMet),
		errors.Is(err, order.ErrNoValidItems),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
