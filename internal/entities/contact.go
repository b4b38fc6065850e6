package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSON column.
// Duplicates are preserved; ordering is the caller's insertion order.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Contact is the persisted contact record.
//
// Timestamps are stored as RFC3339 strings: they travel unmodified through
// the JSON API and the CSV export, and CreatedAt must never be rewritten
// after the first save.
type Contact struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"index;size:256" json:"name"`
	Email       string     `gorm:"size:256" json:"email"`
	PhoneWork   string     `gorm:"size:64" json:"phoneWork"`
	PhoneMobile string     `gorm:"size:64" json:"phoneMobile"`
	Company     string     `gorm:"index;size:256" json:"company"`
	Title       string     `gorm:"size:256" json:"title"`
	Address     string     `gorm:"size:512" json:"address"`
	Website     string     `gorm:"size:512" json:"website"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Groups      StringList `gorm:"type:text" json:"groups"`
	PhotoURL    string     `gorm:"type:text" json:"photoUrl"`
	CreatedAt   string     `gorm:"size:40" json:"createdAt"`
	UpdatedAt   string     `gorm:"size:40" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// PartialContact is a contact's field set without identity, photo, or
// timestamp metadata. It is the output type of the file parsers and the AI
// extractors, and the input type for saving new records.
//
// Every field is always defined: strings default to "" and Groups to an
// empty slice, so downstream code never observes a missing key.
type PartialContact struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneWork   string   `json:"phoneWork"`
	PhoneMobile string   `json:"phoneMobile"`
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Website     string   `json:"website"`
	Notes       string   `json:"notes"`
	Groups      []string `json:"groups"`
}

// ParseError describes a failure scoped to a single entry or row of an
// imported file. RowIndex is 1-based; 0 means the error applies to the file
// as a whole rather than a specific row.
type ParseError struct {
	Message  string `json:"message"`
	RowIndex int    `json:"rowIndex"`
}

// ParseOutcome is the result of parsing an import file. Contacts and Errors
// are independent sequences: a file may yield zero, some, or all of its
// entries as errors without aborting the batch.
type ParseOutcome struct {
	Contacts []PartialContact `json:"contacts"`
	Errors   []ParseError     `json:"errors"`
}
