package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// StatusFilterAll is the sentinel list queries treat as "no status filter".
const StatusFilterAll = "all"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentDebitCard      PaymentMethod = "debit_card"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentRazorpay       PaymentMethod = "razorpay"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCreditCard, PaymentDebitCard, PaymentPaypal, PaymentCashOnDelivery, PaymentRazorpay:
		return true
	default:
		return false
	}
}

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a ShippingAddress) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.ZipCode != "" && a.Country != ""
}

// PaymentDetails is written by a successful gateway verification.
// TransactionID carries the gateway order ID and never changes once set.
type PaymentDetails struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	TransactionID     string `json:"transaction_id"`
	PaymentGateway    string `json:"payment_gateway"`
}

type Order struct {
	ID              string
	UserID          string
	UserName        string
	UserEmail       string
	Items           []Item
	TotalAmount     float64
	Status          Status
	ContactPhone    string
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	PaymentDetails  *PaymentDetails
	DeliveryDate    *time.Time
	DeliveryTime    string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Item struct {
	ProductID   string
	ProductName string
	Quantity    int64
	Price       float64
}

// Delivery is the timestamp pair stamped when an order moves to delivered.
// DeliveryTime keeps only hour and minute, the format the admin UI shows.
type Delivery struct {
	Date time.Time
	Time string
}

func StampDelivery(now time.Time) Delivery {
	return Delivery{Date: now, Time: now.Format("03:04 PM")}
}

type ListFilter struct {
	Status string
	UserID string
}

type Stats struct {
	TotalOrders         int64
	PendingOrders       int64
	CompletedOrders     int64
	TotalRevenue        float64
	AverageOrderValue   float64
	CurrentMonthRevenue float64
	LastMonthRevenue    float64
}
