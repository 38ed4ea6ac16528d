package discount

import "errors"

var (
	ErrEmptyName        = errors.New("coupon display name is empty")
	ErrInvalidCategory  = errors.New("unknown coupon category")
	ErrInvalidDuration  = errors.New("coupon duration must be positive")
	ErrDuplicateCoupon  = errors.New("duplicate coupon display name")
	ErrNegativeTarget   = errors.New("policy targets must be non-negative")
	ErrInvalidStrategy  = errors.New("unknown allocation strategy")
	ErrInvalidUnit      = errors.New("invalid short unit adjustment")
	ErrUnknownAdjuster  = errors.New("unknown adjustment kind")
	ErrAdjusterStrategy = errors.New("adjustment not supported by allocation strategy")
	ErrDuplicateStore   = errors.New("duplicate store id")
	ErrEmptyStoreID     = errors.New("store id is empty")
	ErrEmptyCatalog     = errors.New("store has no coupons")
)
