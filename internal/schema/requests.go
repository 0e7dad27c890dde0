package schema

type RequestName string

const (
	OwnerRequest         RequestName = "vehicle-owner"
	CarsRequest          RequestName = "cars"
	DriversRequest       RequestName = "drivers"
	PendingOrdersRequest RequestName = "pending-orders"
	PackagesRequest      RequestName = "rental-packages"
	QuoteRequest         RequestName = "quote"
	ConfirmRequest       RequestName = "confirm"
	OrderDetailsRequest  RequestName = "order-details"
	RecreateRequest      RequestName = "recreate-order"
	VisibilityRequest    RequestName = "order-visibility"
	CancelRequest        RequestName = "cancel-order"
	VendorProfileRequest RequestName = "vendor-profile"
	VendorOrdersRequest  RequestName = "vendor-orders"
	TransfersRequest     RequestName = "transfer-history"
)
