package domain

import "errors"

var (
	ErrInvalidTicker    = errors.New("invalid ticker")
	ErrPriceUnavailable = errors.New("price unavailable")
	ErrArchiveDisabled  = errors.New("archive storage not configured")
)
