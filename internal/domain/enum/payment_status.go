package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus represents the payment state of a financial entry
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = 0
	PaymentStatusPaid    PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	return [...]string{"Pending", "Paid"}[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	parsed, ok := ParsePaymentStatus(str)
	if !ok {
		return fmt.Errorf("unknown payment status %q", str)
	}
	*s = parsed
	return nil
}

// ParsePaymentStatus resolves a status name or numeric value from a query string
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "Pending", "0":
		return PaymentStatusPending, true
	case "Paid", "1":
		return PaymentStatusPaid, true
	}
	return PaymentStatusPending, false
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
