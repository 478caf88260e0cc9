package enum

// ── State machines (CHECK constrained in DB) ──

const (
	OrderStatusInProgress     = "IN_PROGRESS"
	OrderStatusReadyForPickup = "READY_FOR_PICKUP"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusRejected       = "REJECTED"
	OrderStatusUnsolved       = "UNSOLVED"
	OrderStatusWarranty       = "WARRANTY"
)

const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// ── Roles (minted by the identity backend, validated here) ──

const (
	UserRoleAdmin      = "ADMIN"
	UserRoleTechnician = "TECHNICIAN"
	UserRoleCashier    = "CASHIER"
)

// ── Configurable labels ──

const (
	OrderPriorityLow    = "LOW"
	OrderPriorityNormal = "NORMAL"
	OrderPriorityHigh   = "HIGH"
	OrderPriorityUrgent = "URGENT"
)

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)
