package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the status of a service order
type OrderStatus int

const (
	OrderStatusOpen          OrderStatus = 0
	OrderStatusInProgress    OrderStatus = 1
	OrderStatusAwaitingParts OrderStatus = 2
	OrderStatusReady         OrderStatus = 3
	OrderStatusCompleted     OrderStatus = 4
	OrderStatusCanceled      OrderStatus = 5
)

func (s OrderStatus) String() string {
	return [...]string{"Open", "InProgress", "AwaitingParts", "Ready", "Completed", "Canceled"}[s]
}

// IsValid reports whether the status is one of the known values
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusOpen && s <= OrderStatusCanceled
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, ok := ParseOrderStatus(str)
	if !ok {
		return fmt.Errorf("unknown order status %q", str)
	}
	*s = parsed
	return nil
}

// ParseOrderStatus resolves a status name or numeric value from a query string
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch s {
	case "Open", "0":
		return OrderStatusOpen, true
	case "InProgress", "1":
		return OrderStatusInProgress, true
	case "AwaitingParts", "2":
		return OrderStatusAwaitingParts, true
	case "Ready", "3":
		return OrderStatusReady, true
	case "Completed", "4":
		return OrderStatusCompleted, true
	case "Canceled", "5":
		return OrderStatusCanceled, true
	}
	return OrderStatusOpen, false
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
