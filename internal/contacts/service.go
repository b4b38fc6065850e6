// Package contacts implements the contact lifecycle: records are created
// and mutated only through Save (full replace-by-id) and removed only
// through Delete/DeleteMany. Every mutation is a read-modify-write of the
// whole stored set.
package contacts

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cognicard/cognicard/internal/entities"
	"github.com/cognicard/cognicard/internal/parsers"
	"github.com/cognicard/cognicard/internal/photo"
)

var (
	ErrNameRequired = errors.New("contact name is required")
	ErrNotFound     = errors.New("contact not found")
)

// Store is the persistence surface the service mutates through. Any
// implementation works as long as ReadAll/WriteAll see the full set.
type Store interface {
	ReadAll() ([]entities.Contact, error)
	WriteAll([]entities.Contact) error
}

// Service owns all contact mutations.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// Save creates or updates a contact and returns the persisted record.
//
// A contact without an ID (or with an ID not present in the store) is
// created: it gets a fresh UUID and both timestamps. An existing contact is
// replaced wholesale, keeping its stored CreatedAt and refreshing
// UpdatedAt. The photo reference is re-resolved from website/email unless
// the caller supplied an embedded data-URL image, which always wins.
func (s *Service) Save(contact entities.Contact) (entities.Contact, error) {
	if strings.TrimSpace(contact.Name) == "" {
		return entities.Contact{}, ErrNameRequired
	}

	all, err := s.store.ReadAll()
	if err != nil {
		return entities.Contact{}, err
	}

	now := s.timestamp()
	contact.Groups = cleanGroups(contact.Groups)
	if !photo.IsEmbedded(contact.PhotoURL) {
		contact.PhotoURL = photo.Resolve(contact.Name, contact.Website, contact.Email)
	}
	contact.UpdatedAt = now

	if contact.ID != "" {
		for i := range all {
			if all[i].ID == contact.ID {
				contact.CreatedAt = all[i].CreatedAt
				all[i] = contact
				return contact, s.store.WriteAll(all)
			}
		}
		// Unknown ID: treat as new rather than failing the save.
	}

	contact.ID = uuid.NewString()
	contact.CreatedAt = now
	all = append(all, contact)

	return contact, s.store.WriteAll(all)
}

// SaveMany completes a batch of partial records (from an import or an AI
// extraction) and appends them to the store in one write. Every record gets
// its own identity and the shared commit timestamp. A record without a name
// fails the whole batch before anything is written.
func (s *Service) SaveMany(partials []entities.PartialContact) ([]entities.Contact, error) {
	if len(partials) == 0 {
		return nil, nil
	}

	for _, p := range partials {
		if strings.TrimSpace(p.Name) == "" {
			return nil, ErrNameRequired
		}
	}

	all, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	created := make([]entities.Contact, 0, len(partials))
	for _, p := range partials {
		p = parsers.Normalize(p)
		created = append(created, entities.Contact{
			ID:          uuid.NewString(),
			Name:        p.Name,
			Email:       p.Email,
			PhoneWork:   p.PhoneWork,
			PhoneMobile: p.PhoneMobile,
			Company:     p.Company,
			Title:       p.Title,
			Address:     p.Address,
			Website:     p.Website,
			Notes:       p.Notes,
			Groups:      cleanGroups(p.Groups),
			PhotoURL:    photo.Resolve(p.Name, p.Website, p.Email),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	all = append(all, created...)
	if err := s.store.WriteAll(all); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID returns a single stored contact.
func (s *Service) GetByID(id string) (entities.Contact, error) {
	all, err := s.store.ReadAll()
	if err != nil {
		return entities.Contact{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return entities.Contact{}, ErrNotFound
}

// List returns all contacts sorted by name, case-insensitively.
func (s *Service) List() ([]entities.Contact, error) {
	all, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all, nil
}

// Search returns contacts whose name, company, email, notes, or group
// labels contain the query, case-insensitively. An empty query returns the
// full list.
func (s *Service) Search(query string) ([]entities.Contact, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all, nil
	}

	matched := make([]entities.Contact, 0, len(all))
	for _, c := range all {
		if contactMatches(c, query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Delete removes a contact by ID. Deleting an unknown ID is a no-op.
func (s *Service) Delete(id string) error {
	return s.DeleteMany([]string{id})
}

// DeleteMany removes a set of contacts by ID in a single store write.
func (s *Service) DeleteMany(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	all, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]entities.Contact, 0, len(all))
	for _, c := range all {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(all) {
		return nil
	}
	return s.store.WriteAll(kept)
}

// Groups returns the distinct group labels across all contacts, sorted
// alphabetically.
func (s *Service) Groups() ([]string, error) {
	all, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	groups := make([]string, 0)
	for _, c := range all {
		for _, g := range c.Groups {
			if g != "" && !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}

	sort.Strings(groups)
	return groups, nil
}

// ParseGroups splits a comma- or semicolon-delimited group string, trimming
// each label and dropping empty pieces.
func ParseGroups(raw string) []string {
	raw = strings.ReplaceAll(raw, ";", ",")
	groups := make([]string, 0)
	for _, piece := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			groups = append(groups, trimmed)
		}
	}
	return groups
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// cleanGroups drops empty labels but keeps order and duplicates.
func cleanGroups(groups []string) entities.StringList {
	cleaned := make(entities.StringList, 0, len(groups))
	for _, g := range groups {
		if g != "" {
			cleaned = append(cleaned, g)
		}
	}
	return cleaned
}

func contactMatches(c entities.Contact, query string) bool {
	for _, field := range []string{c.Name, c.Company, c.Email, c.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	for _, group := range c.Groups {
		if strings.Contains(strings.ToLower(group), query) {
			return true
		}
	}
	return false
}
