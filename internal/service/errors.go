package service

import "errors"

var (
	ErrFabricNotFound     = errors.New("fabric not found")
	ErrFabricInvalid      = errors.New("fabric invalid")
	ErrFabricNameRequired = errors.New("fabric name required")
	ErrFabricInUse        = errors.New("fabric referenced by orders")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserInvalid     = errors.New("user invalid")
	ErrUserRoleInvalid = errors.New("user role invalid")

	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderInvalid             = errors.New("order invalid")
	ErrOrderCodeRequired        = errors.New("order code required")
	ErrOrderCodeExists          = errors.New("order code already exists")
	ErrOrderDateRequired        = errors.New("order date required")
	ErrOrderFabricRequired      = errors.New("order fabric required")
	ErrOrderAdminRequired       = errors.New("order admin user required")
	ErrOrderGraphicRequired     = errors.New("order graphic user required")
	ErrOrderAlreadyCompleted    = errors.New("order already completed")
	ErrOrderCustomerOutstanding = errors.New("order customer balance outstanding")
	ErrOrderFactoryOutstanding  = errors.New("order factory balance outstanding")
	ErrBulkDeleteEmpty          = errors.New("no orders selected")

	ErrPaymentAmountInvalid      = errors.New("payment amount invalid")
	ErrPaymentExceedsOutstanding = errors.New("payment amount exceeds outstanding balance")
	ErrPaymentDateInvalid        = errors.New("payment date invalid")
	ErrPaymentSideInvalid        = errors.New("payment side invalid")

	ErrDateInvalid = errors.New("date invalid")

	ErrImportFileInvalid = errors.New("import file invalid")
	ErrImportTooManyRows = errors.New("import file has too many rows")
	ErrImportModeInvalid = errors.New("import mode invalid")

	ErrReportTypeInvalid     = errors.New("report type invalid")
	ErrReportPeriodInvalid   = errors.New("report period invalid")
	ErrReportPrefixInvalid   = errors.New("report prefix invalid")
	ErrDashboardRangeInvalid = errors.New("dashboard range invalid")
)
