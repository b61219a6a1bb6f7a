package resident

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// OccupancyStatus describes how the household occupies the house
type OccupancyStatus string

const (
	OccupancyOwner  OccupancyStatus = "standalone owner"
	OccupancyTenant OccupancyStatus = "tenant"
)

// IsValid checks if the occupancy status is valid
func (s OccupancyStatus) IsValid() bool {
	return s == OccupancyOwner || s == OccupancyTenant
}

// TenantInfo holds the names of tenants living in the house, if any.
// Document metadata only; no computation depends on it.
type TenantInfo struct {
	Tenant1 string `json:"tenant1,omitempty"`
	Tenant2 string `json:"tenant2,omitempty"`
	Tenant3 string `json:"tenant3,omitempty"`
	Tenant4 string `json:"tenant4,omitempty"`
}

// Value implements driver.Valuer for JSONB storage
func (t TenantInfo) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB retrieval
func (t *TenantInfo) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// HouseHelpEntry describes one domestic helper registered with the household
type HouseHelpEntry struct {
	Name              string `json:"name,omitempty"`
	NIC               string `json:"nic,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	HasCriminalRecord bool   `json:"has_criminal_record"`
}

// IsEmpty reports whether the entry carries no identifying information
func (h HouseHelpEntry) IsEmpty() bool {
	return h.Name == "" && h.NIC == "" && h.PhoneNumber == ""
}

// HouseHelpEntries is a JSONB-stored list of house-help records
type HouseHelpEntries []HouseHelpEntry

// Value implements driver.Valuer for JSONB storage
func (h HouseHelpEntries) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner for JSONB retrieval
func (h *HouseHelpEntries) Scan(value interface{}) error {
	if value == nil {
		*h = HouseHelpEntries{}
		return nil
	}
	return scanJSON(value, h)
}

// Compact drops entries with no identifying information
func (h HouseHelpEntries) Compact() HouseHelpEntries {
	out := make(HouseHelpEntries, 0, len(h))
	for _, e := range h {
		if !e.IsEmpty() {
			out = append(out, e)
		}
	}
	return out
}

// DriverInfo describes the household's registered driver, if any
type DriverInfo struct {
	Name              string `json:"name,omitempty"`
	NIC               string `json:"nic,omitempty"`
	LicenseNo         string `json:"license_no,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	HasCriminalRecord bool   `json:"has_criminal_record"`
}

// IsEmpty reports whether the driver record carries no information
func (d DriverInfo) IsEmpty() bool {
	return d.Name == "" && d.NIC == "" && d.LicenseNo == "" &&
		d.PhoneNumber == "" && !d.HasCriminalRecord
}

// Value implements driver.Valuer for JSONB storage
func (d DriverInfo) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *DriverInfo) Scan(value interface{}) error {
	return scanJSON(value, d)
}

// StringList is a JSONB-stored list of strings (vehicle registrations)
type StringList []string

// Value implements driver.Valuer for JSONB storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	return scanJSON(value, l)
}

// Compact drops empty strings from the list
func (l StringList) Compact() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func scanJSON(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		return nil
	default:
		return errors.New("failed to scan JSONB column: unsupported type")
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
