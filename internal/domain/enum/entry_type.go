package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// EntryType represents the direction of a financial entry
type EntryType int

const (
	EntryTypeIncome  EntryType = 0
	EntryTypeExpense EntryType = 1
)

func (t EntryType) String() string {
	return [...]string{"Income", "Expense"}[t]
}

func (t EntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = EntryType(i)
		return nil
	}
	parsed, ok := ParseEntryType(str)
	if !ok {
		return fmt.Errorf("unknown entry type %q", str)
	}
	*t = parsed
	return nil
}

// ParseEntryType resolves a type name or numeric value from a query string
func ParseEntryType(s string) (EntryType, bool) {
	switch s {
	case "Income", "0":
		return EntryTypeIncome, true
	case "Expense", "1":
		return EntryTypeExpense, true
	}
	return EntryTypeIncome, false
}

func (t EntryType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *EntryType) Scan(value interface{}) error {
	if value == nil {
		*t = EntryTypeIncome
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = EntryType(v)
	case int:
		*t = EntryType(v)
	}
	return nil
}
