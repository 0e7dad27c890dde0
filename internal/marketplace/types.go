package marketplace

import (
	"strings"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"github.com/shopspring/decimal"
)

type VehicleOwner struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name"`
	PrimaryMobile   string          `json:"primary_mobile"`
	SecondaryMobile string          `json:"secondary_mobile,omitempty"`
	WalletBalance   decimal.Decimal `json:"wallet_balance"`
	OrganizationID  string          `json:"organization_id"`
	Address         string          `json:"address"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type Car struct {
	ID              string `json:"id"`
	CarName         string `json:"car_name"`
	CarType         string `json:"car_type"`
	CarNumber       string `json:"car_number"`
	CarBrand        string `json:"car_brand"`
	CarModel        string `json:"car_model"`
	CarYear         int    `json:"car_year"`
	OrganizationID  string `json:"organization_id"`
	VehicleOwnerID  string `json:"vehicle_owner_id"`
	RcFrontImgURL   string `json:"rc_front_img_url,omitempty"`
	RcBackImgURL    string `json:"rc_back_img_url,omitempty"`
	InsuranceImgURL string `json:"insurance_img_url,omitempty"`
	FcImgURL        string `json:"fc_img_url,omitempty"`
	CarImgURL       string `json:"car_img_url,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type Driver struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	PrimaryNumber   string `json:"primary_number"`
	SecondaryNumber string `json:"secondary_number,omitempty"`
	Address         string `json:"address"`
	AadharNumber    string `json:"aadhar_number"`
	OrganizationID  string `json:"organization_id"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type PendingOrder struct {
	OrderID              int               `json:"order_id"`
	VendorID             string            `json:"vendor_id"`
	TripType             string            `json:"trip_type"`
	CarType              string            `json:"car_type"`
	PickupDropLocation   map[string]string `json:"pickup_drop_location"`
	StartDateTime        string            `json:"start_date_time"`
	CustomerName         string            `json:"customer_name"`
	CustomerNumber       string            `json:"customer_number"`
	CostPerKm            decimal.Decimal   `json:"cost_per_km"`
	ExtraCostPerKm       decimal.Decimal   `json:"extra_cost_per_km"`
	DriverAllowance      decimal.Decimal   `json:"driver_allowance"`
	ExtraDriverAllowance decimal.Decimal   `json:"extra_driver_allowance"`
	PermitCharges        decimal.Decimal   `json:"permit_charges"`
	ExtraPermitCharges   decimal.Decimal   `json:"extra_permit_charges"`
	HillCharges          decimal.Decimal   `json:"hill_charges"`
	TollCharges          decimal.Decimal   `json:"toll_charges"`
	PickupNotes          string            `json:"pickup_notes,omitempty"`
	TripStatus           string            `json:"trip_status,omitempty"`
	Status               string            `json:"status,omitempty"`
	PickNearCity         string            `json:"pick_near_city"`
	TripDistance         *float64          `json:"trip_distance"`
	TripTime             string            `json:"trip_time"`
	PlatformFeesPercent  decimal.Decimal   `json:"platform_fees_percent"`
	CreatedAt            string            `json:"created_at"`
}

// EffectiveStatus is trip_status, or status for older backends, normalised.
func (o PendingOrder) EffectiveStatus() string {
	status := o.TripStatus
	if status == "" {
		status = o.Status
	}
	return strings.ToUpper(strings.TrimSpace(status))
}

type VendorProfile struct {
	ID              string          `json:"id"`
	FullName        string          `json:"full_name"`
	PrimaryNumber   string          `json:"primary_number"`
	SecondaryNumber string          `json:"secondary_number,omitempty"`
	GpayNumber      string          `json:"gpay_number,omitempty"`
	WalletBalance   decimal.Decimal `json:"wallet_balance"`
	BankBalance     decimal.Decimal `json:"bank_balance"`
	AadharStatus    string          `json:"aadhar_status,omitempty"`
	Address         string          `json:"address,omitempty"`
	AccountStatus   string          `json:"account_status"`
	BranchName      string          `json:"branch_name,omitempty"`
	CreatedAt       string          `json:"created_at,omitempty"`
}

type VendorOrder struct {
	ID                  int               `json:"id"`
	Source              string            `json:"source"`
	SourceOrderID       int               `json:"source_order_id"`
	VendorID            string            `json:"vendor_id"`
	TripType            string            `json:"trip_type"`
	CarType             string            `json:"car_type"`
	PickupDropLocation  map[string]string `json:"pickup_drop_location"`
	StartDateTime       string            `json:"start_date_time"`
	CustomerName        string            `json:"customer_name"`
	CustomerNumber      string            `json:"customer_number"`
	TripStatus          string            `json:"trip_status"`
	PickNearCity        string            `json:"pick_near_city"`
	TripDistance        *float64          `json:"trip_distance"`
	TripTime            string            `json:"trip_time"`
	EstimatedPrice      decimal.Decimal   `json:"estimated_price"`
	VendorPrice         decimal.Decimal   `json:"vendor_price"`
	PlatformFeesPercent decimal.Decimal   `json:"platform_fees_percent"`
	CreatedAt           string            `json:"created_at"`
	OrderAcceptStatus   bool              `json:"order_accept_status"`
	DriverAssigned      bool              `json:"Driver_assigned"`
	CarAssigned         bool              `json:"Car_assigned"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

// CreatedTime parses created_at; unparsable values are the zero time.
func (o VendorOrder) CreatedTime() time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, o.CreatedAt); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

type Assignment struct {
	ID               int     `json:"id"`
	OrderID          int     `json:"order_id"`
	VehicleOwnerID   string  `json:"vehicle_owner_id"`
	DriverID         string  `json:"driver_id"`
	CarID            string  `json:"car_id"`
	AssignmentStatus string  `json:"assignment_status"`
	AssignedAt       string  `json:"assigned_at"`
	ExpiresAt        string  `json:"expires_at"`
	CancelledAt      *string `json:"cancelled_at"`
	CompletedAt      *string `json:"completed_at"`
	CreatedAt        string  `json:"created_at"`
}

type EndRecord struct {
	ID                    int    `json:"id"`
	OrderID               int    `json:"order_id"`
	DriverID              string `json:"driver_id"`
	StartKm               int    `json:"start_km"`
	EndKm                 int    `json:"end_km"`
	ContactNumber         string `json:"contact_number"`
	ImgURL                string `json:"img_url"`
	CloseSpeedometerImage string `json:"close_speedometer_image"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
}

type OrderDetails struct {
	VendorOrder

	ClosedVendorPrice          *decimal.Decimal `json:"closed_vendor_price"`
	ClosedDriverPrice          *decimal.Decimal `json:"closed_driver_price"`
	CommisionAmount            *decimal.Decimal `json:"commision_amount"`
	MaxTime                    *int             `json:"max_time"`
	CancelledBy                *string          `json:"cancelled_by"`
	MaxTimeToAssignOrder       string           `json:"max_time_to_assign_order"`
	TollChargeUpdate           bool             `json:"toll_charge_update"`
	DataVisibilityVehicleOwner bool             `json:"data_visibility_vehicle_owner"`

	CostPerKm            *decimal.Decimal `json:"cost_per_km"`
	ExtraCostPerKm       *decimal.Decimal `json:"extra_cost_per_km"`
	DriverAllowance      *decimal.Decimal `json:"driver_allowance"`
	ExtraDriverAllowance *decimal.Decimal `json:"extra_driver_allowance"`
	PermitCharges        *decimal.Decimal `json:"permit_charges"`
	ExtraPermitCharges   *decimal.Decimal `json:"extra_permit_charges"`
	HillCharges          *decimal.Decimal `json:"hill_charges"`
	TollCharges          *decimal.Decimal `json:"toll_charges"`
	PickupNotes          *string          `json:"pickup_notes"`

	PackageHours        *pricing.Package `json:"package_hours"`
	CostPerHour         *decimal.Decimal `json:"cost_per_hour"`
	ExtraCostPerHour    *decimal.Decimal `json:"extra_cost_per_hour"`
	CostForAddonKm      *decimal.Decimal `json:"cost_for_addon_km"`
	ExtraCostForAddonKm *decimal.Decimal `json:"extra_cost_for_addon_km"`

	Assignments         []Assignment     `json:"assignments"`
	EndRecords          []EndRecord      `json:"end_records"`
	AssignedDriverName  *string          `json:"assigned_driver_name"`
	AssignedDriverPhone *string          `json:"assigned_driver_phone"`
	AssignedCarName     *string          `json:"assigned_car_name"`
	AssignedCarNumber   *string          `json:"assigned_car_number"`
	VehicleOwnerName    *string          `json:"vehicle_owner_name"`
	VendorProfit        *decimal.Decimal `json:"vendor_profit"`
	AdminProfit         *decimal.Decimal `json:"admin_profit"`
}

type TransferStatus string

const (
	TransferPending  TransferStatus = "Pending"
	TransferApproved TransferStatus = "Approved"
	TransferRejected TransferStatus = "Rejected"
)

type Transfer struct {
	ID                  string           `json:"id"`
	Status              TransferStatus   `json:"status"`
	RequestedAmount     decimal.Decimal  `json:"requested_amount"`
	CreatedAt           string           `json:"created_at"`
	WalletBalanceBefore decimal.Decimal  `json:"wallet_balance_before"`
	BankBalanceBefore   decimal.Decimal  `json:"bank_balance_before"`
	WalletBalanceAfter  *decimal.Decimal `json:"wallet_balance_after,omitempty"`
	BankBalanceAfter    *decimal.Decimal `json:"bank_balance_after,omitempty"`
	AdminNotes          string           `json:"admin_notes,omitempty"`
}

type TransferHistory struct {
	Transactions []Transfer `json:"transactions"`
}
