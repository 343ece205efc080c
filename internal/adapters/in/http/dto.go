package http

import "time"

// Error is the uniform error envelope for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for POST /api/v1/orders.
type CreateOrderRequest struct {
	OrderNumber     string  `json:"orderNumber"`
	RestaurantName  string  `json:"restaurantName"`
	PickupLat       float64 `json:"pickupLat"`
	PickupLon       float64 `json:"pickupLon"`
	DeliveryAddress string  `json:"deliveryAddress"`
	DeliveryLat     float64 `json:"deliveryLat"`
	DeliveryLon     float64 `json:"deliveryLon"`
	Amount          string  `json:"amount"`
}

// UpdateOrderStatusRequest is the payload for PATCH /api/v1/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// RegisterDriverRequest is the payload for POST /api/v1/drivers.
type RegisterDriverRequest struct {
	Name   string  `json:"name"`
	ChatID string  `json:"chatId"`
	Phone  string  `json:"phone"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// ReviewDriverRequest is the payload for POST /api/v1/drivers/:id/review.
type ReviewDriverRequest struct {
	Approved bool `json:"approved"`
}

// DriverPresenceRequest is the payload for POST /api/v1/drivers/:id/presence.
// Lat and Lon are optional; when both are present the driver's position
// is updated along with the online flag.
type DriverPresenceRequest struct {
	Online bool     `json:"online"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}

// CreatedResponse carries the identifier of a freshly created entity.
type CreatedResponse struct {
	ID string `json:"id"`
}

// DispatchResponse reports the outcome of a manual dispatch run.
type DispatchResponse struct {
	Assigned int `json:"assigned"`
}

// PendingOrder is one backlog entry in GET /api/v1/orders/pending.
type PendingOrder struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"orderNumber"`
	RestaurantName  string    `json:"restaurantName"`
	PickupLat       float64   `json:"pickupLat"`
	PickupLon       float64   `json:"pickupLon"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Amount          string    `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Driver is one entry in GET /api/v1/drivers.
type Driver struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ChatID         string  `json:"chatId"`
	Phone          string  `json:"phone"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	IsAvailable    bool    `json:"isAvailable"`
	IsOnline       bool    `json:"isOnline"`
	ApprovalStatus string  `json:"approvalStatus"`
}

// Assignment is one entry in GET /api/v1/assignments/recent.
type Assignment struct {
	ID                 string    `json:"id"`
	OrderID            string    `json:"orderId"`
	DriverID           string    `json:"driverId"`
	OrderNumber        string    `json:"orderNumber"`
	DriverName         string    `json:"driverName"`
	DistanceKm         float64   `json:"distanceKm"`
	AssignedAt         time.Time `json:"assignedAt"`
	NotificationStatus string    `json:"notificationStatus"`
}

// Stats is the dashboard counter set from GET /api/v1/stats.
type Stats struct {
	PendingOrders    int `json:"pendingOrders"`
	ActiveOrders     int `json:"activeOrders"`
	TotalOrders      int `json:"totalOrders"`
	OnlineDrivers    int `json:"onlineDrivers"`
	AvailableDrivers int `json:"availableDrivers"`
	TotalDrivers     int `json:"totalDrivers"`
	TotalAssignments int `json:"totalAssignments"`
}
