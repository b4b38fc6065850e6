package contacts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cognicard/cognicard/internal/entities"
)

var ErrNotFound = errors.New("contact not found")

// Repository is the contact store accessor. The pipeline treats it as a
// single key-value surface: ReadAll returns the full set, WriteAll replaces
// it. Callers own the read-modify-write sequencing.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReadAll returns every contact ordered by name (case-insensitive).
func (r *Repository) ReadAll() ([]entities.Contact, error) {
	var contacts []entities.Contact
	err := r.db.Order("name COLLATE NOCASE ASC").Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("read contacts: %w", err)
	}

	// GORM leaves Groups nil for rows written before the column existed.
	for i := range contacts {
		if contacts[i].Groups == nil {
			contacts[i].Groups = entities.StringList{}
		}
	}

	return contacts, nil
}

// WriteAll replaces the entire contact set in a single transaction. The
// store never partially updates: either the whole new set lands or nothing
// changes.
func (r *Repository) WriteAll(contacts []entities.Contact) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.Contact{}).Error; err != nil {
			return fmt.Errorf("clear contacts: %w", err)
		}
		if len(contacts) == 0 {
			return nil
		}
		if err := tx.Create(&contacts).Error; err != nil {
			return fmt.Errorf("write contacts: %w", err)
		}
		return nil
	})
}

// GetByID returns a single contact. Provided as a convenience read; all
// mutations still go through ReadAll/WriteAll.
func (r *Repository) GetByID(id string) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if contact.Groups == nil {
		contact.Groups = entities.StringList{}
	}
	return &contact, nil
}

// Count returns the number of stored contacts.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Contact{}).Count(&count).Error
	return count, err
}

