package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB-backed list columns. Each type marshals to a JSON array on write and
// scans back from bytea/text. NULL scans to nil so callers can distinguish
// "never set" from an empty list, though the ledger treats both the same.

type PaymentList []Payment

func (l PaymentList) Value() (driver.Value, error) {
	if l == nil {
		l = PaymentList{}
	}
	return json.Marshal(l)
}

func (l *PaymentList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type ExpenseList []Expense

func (l ExpenseList) Value() (driver.Value, error) {
	if l == nil {
		l = ExpenseList{}
	}
	return json.Marshal(l)
}

func (l *ExpenseList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type PartList []Part

func (l PartList) Value() (driver.Value, error) {
	if l == nil {
		l = PartList{}
	}
	return json.Marshal(l)
}

func (l *PartList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dest interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
