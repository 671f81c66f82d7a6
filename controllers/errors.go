package controllers

// CustomError carries a public-facing message through gin's error plumbing.
type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission        = &CustomError{"you do not have permission for this action"}
	ErrTableOccupied       = &CustomError{"table is not available"}
	ErrNoActiveSession     = &CustomError{"no active session for this table"}
	ErrOrderNotCancellable = &CustomError{"order can only be cancelled while pending or confirmed"}
	ErrInsufficientStock   = &CustomError{"insufficient stock for this removal"}
	ErrAccountLocked       = &CustomError{"account temporarily locked, try again later"}
)
