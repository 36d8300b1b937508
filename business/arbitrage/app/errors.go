package app

import (
	"errors"
	"fmt"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/aptos-arbitrage/internal/apperror"
)

// AsAppError maps domain errors to their structured application errors.
func AsAppError(err error) *apperror.AppError {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var invalidPrice *domain.InvalidPriceError
	if errors.As(err, &invalidPrice) {
		return apperror.Validation(apperror.CodeInvalidPrice,
			fmt.Sprintf("token %s has price %s", invalidPrice.Token, invalidPrice.Price))
	}

	var impossible *domain.ImpossibleRouteError
	if errors.As(err, &impossible) {
		return apperror.New(apperror.CodeImpossibleRoute,
			apperror.WithContext(impossible.Error()))
	}

	var invalidSize *domain.InvalidTradeSizeError
	if errors.As(err, &invalidSize) {
		return apperror.Validation(apperror.CodeInvalidTradeSize,
			fmt.Sprintf("got %s", invalidSize.AmountUSD))
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "arbitrage evaluation")
}
