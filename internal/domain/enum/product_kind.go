package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductKind distinguishes physical parts from labor services in the catalog
type ProductKind int

const (
	ProductKindProduct ProductKind = 0
	ProductKindService ProductKind = 1
)

func (k ProductKind) String() string {
	return [...]string{"Product", "Service"}[k]
}

func (k ProductKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ProductKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = ProductKind(i)
		return nil
	}
	switch str {
	case "Product":
		*k = ProductKindProduct
	case "Service":
		*k = ProductKindService
	default:
		return fmt.Errorf("unknown product kind %q", str)
	}
	return nil
}

func (k ProductKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *ProductKind) Scan(value interface{}) error {
	if value == nil {
		*k = ProductKindProduct
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = ProductKind(v)
	case int:
		*k = ProductKind(v)
	}
	return nil
}
