package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is how the store writes CURRENT_TIMESTAMP and how
// timestamps go out on the wire.
const TimestampLayout = "2006-01-02 15:04:05"

// Order is one rental/accessory request. Text fields are nullable: a field
// left out of the create payload is stored and returned as null. Active is
// 0 or 1 on the wire.
type Order struct {
	ID            int64     `json:"pedidoid"`
	CustomerName  *string   `json:"name"`
	IDDocument    *string   `json:"rg"`
	ProductName   *string   `json:"nome_produto"`
	AccessoryName *string   `json:"nome_rosh"`
	Scent         *string   `json:"essencia"`
	Note          *string   `json:"observacao"`
	Active        int       `json:"ativo"`
	CreatedAt     Timestamp `json:"criacao"`
	UpdatedAt     Timestamp `json:"atualizacao"`
}

// OrderInput is the body of POST /api/pedido and PUT /api/pedido/:id.
// Fields are intentionally unvalidated; nil means "store NULL".
type OrderInput struct {
	CustomerName  *string `json:"nome"`
	IDDocument    *string `json:"rg"`
	ProductName   *string `json:"produto"`
	AccessoryName *string `json:"rosh"`
	Scent         *string `json:"essencia"`
	Note          *string `json:"observacao"`
}

// ActiveRequest is the body of PUT /api/pedido/:id/ativo. Any JSON number
// equal to 0 or 1 is accepted (1.0 included); booleans and strings fail to
// bind. The "bit" tag is registered by the API validator.
type ActiveRequest struct {
	Active *float64 `json:"ativo" validate:"required,bit"`
}

// Flag returns the validated flag as 0 or 1.
func (r ActiveRequest) Flag() int {
	if r.Active != nil && *r.Active == 1 {
		return 1
	}
	return 0
}

// Timestamp is a store timestamp that marshals as "YYYY-MM-DD HH:MM:SS".
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(TimestampLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	return t.parse(s)
}

// Scan accepts both the driver's parsed time and raw text.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("timestamp: cannot scan %T", src)
	}
}

func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC().Format(TimestampLayout), nil
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}
