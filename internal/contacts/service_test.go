package contacts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicard/cognicard/internal/entities"
)

type memStore struct {
	contacts []entities.Contact
	readErr  error
	writeErr error
	writes   int
}

func (m *memStore) ReadAll() ([]entities.Contact, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]entities.Contact, len(m.contacts))
	copy(out, m.contacts)
	return out, nil
}

func (m *memStore) WriteAll(contacts []entities.Contact) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.contacts = make([]entities.Contact, len(contacts))
	copy(m.contacts, contacts)
	return nil
}

func newTestService(store *memStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestService_SaveNewContact(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	saved, err := svc.Save(entities.Contact{
		Name:    "Jane Cooper",
		Email:   "jane@acme.com",
		Website: "https://acme.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "2025-06-15T12:00:00Z", saved.CreatedAt)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	assert.Equal(t, "https://logo.clearbit.com/acme.com", saved.PhotoURL)
	require.Len(t, store.contacts, 1)
}

func TestService_SaveRequiresName(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	_, err := svc.Save(entities.Contact{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Zero(t, store.writes)
}

func TestService_SaveUpdateKeepsCreatedAt(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{{
		ID:        "existing-1",
		Name:      "Old Name",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}}}
	svc := newTestService(store)

	saved, err := svc.Save(entities.Contact{
		ID:   "existing-1",
		Name: "New Name",
	})
	require.NoError(t, err)

	assert.Equal(t, "existing-1", saved.ID)
	assert.Equal(t, "2024-01-01T00:00:00Z", saved.CreatedAt)
	assert.Equal(t, "2025-06-15T12:00:00Z", saved.UpdatedAt)
	require.Len(t, store.contacts, 1)
	assert.Equal(t, "New Name", store.contacts[0].Name)
}

func TestService_SaveUnknownIDCreatesNew(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	saved, err := svc.Save(entities.Contact{ID: "ghost-id", Name: "Someone"})
	require.NoError(t, err)

	// The supplied ID is not trusted: the record gets a fresh one.
	assert.NotEqual(t, "ghost-id", saved.ID)
	assert.Equal(t, "2025-06-15T12:00:00Z", saved.CreatedAt)
}

func TestService_SaveEmbeddedPhotoWins(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	saved, err := svc.Save(entities.Contact{
		Name:     "Photo Person",
		Website:  "https://acme.com",
		PhotoURL: "data:image/png;base64,iVBOR",
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBOR", saved.PhotoURL)
}

func TestService_SaveFiltersEmptyGroups(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	saved, err := svc.Save(entities.Contact{
		Name:   "Grouped",
		Groups: entities.StringList{"Work", "", "Friends"},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.StringList{"Work", "Friends"}, saved.Groups)
}

func TestService_SaveMany(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{{
		ID:   "pre-existing",
		Name: "Already Here",
	}}}
	svc := newTestService(store)

	created, err := svc.SaveMany([]entities.PartialContact{
		{Name: "Alpha", Email: "alpha@a.com"},
		{Name: "Beta", Website: "https://beta.io"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEqual(t, created[0].ID, created[1].ID)
	assert.Equal(t, "https://logo.clearbit.com/a.com", created[0].PhotoURL)
	assert.Equal(t, "https://logo.clearbit.com/beta.io", created[1].PhotoURL)

	// One write appending to the existing set; no dedup against it.
	assert.Equal(t, 1, store.writes)
	assert.Len(t, store.contacts, 3)
}

func TestService_SaveManyNamelessFailsWholeBatch(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	_, err := svc.SaveMany([]entities.PartialContact{
		{Name: "Valid"},
		{Name: ""},
	})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Zero(t, store.writes)
}

func TestService_SaveManyEmpty(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	created, err := svc.SaveMany(nil)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Zero(t, store.writes)
}

func TestService_GetByID(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{{ID: "c-1", Name: "Found"}}}
	svc := newTestService(store)

	c, err := svc.GetByID("c-1")
	require.NoError(t, err)
	assert.Equal(t, "Found", c.Name)

	_, err = svc.GetByID("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListSortsByName(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{
		{ID: "1", Name: "zeta"},
		{ID: "2", Name: "Alpha"},
		{ID: "3", Name: "mike"},
	}}
	svc := newTestService(store)

	all, err := svc.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alpha", all[0].Name)
	assert.Equal(t, "mike", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
}

func TestService_Search(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{
		{ID: "1", Name: "Jane Cooper", Company: "Acme"},
		{ID: "2", Name: "Bob Smith", Email: "bob@widgets.io"},
		{ID: "3", Name: "Carol", Notes: "met at acme conference"},
		{ID: "4", Name: "Dave", Groups: entities.StringList{"Acme Alumni"}},
	}}
	svc := newTestService(store)

	results, err := svc.Search("ACME")
	require.NoError(t, err)
	require.Len(t, results, 3)

	results, err = svc.Search("widgets")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob Smith", results[0].Name)

	results, err = svc.Search("  ")
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestService_DeleteMany(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{
		{ID: "1", Name: "One"},
		{ID: "2", Name: "Two"},
		{ID: "3", Name: "Three"},
	}}
	svc := newTestService(store)

	require.NoError(t, svc.DeleteMany([]string{"1", "3", "missing"}))
	require.Len(t, store.contacts, 1)
	assert.Equal(t, "2", store.contacts[0].ID)
}

func TestService_DeleteUnknownIsNoOp(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{{ID: "1", Name: "One"}}}
	svc := newTestService(store)

	require.NoError(t, svc.Delete("does-not-exist"))
	assert.Zero(t, store.writes)
	assert.Len(t, store.contacts, 1)
}

func TestService_Groups(t *testing.T) {
	store := &memStore{contacts: []entities.Contact{
		{ID: "1", Name: "A", Groups: entities.StringList{"Work", "Friends"}},
		{ID: "2", Name: "B", Groups: entities.StringList{"Friends", "Family"}},
		{ID: "3", Name: "C"},
	}}
	svc := newTestService(store)

	groups, err := svc.Groups()
	require.NoError(t, err)
	assert.Equal(t, []string{"Family", "Friends", "Work"}, groups)
}

func TestService_StoreErrorsPropagate(t *testing.T) {
	boom := errors.New("db unavailable")
	svc := newTestService(&memStore{readErr: boom})

	_, err := svc.Save(entities.Contact{Name: "X"})
	assert.ErrorIs(t, err, boom)

	_, err = svc.List()
	assert.ErrorIs(t, err, boom)
}

func TestParseGroups(t *testing.T) {
	assert.Equal(t, []string{"Work", "Friends"}, ParseGroups("Work, Friends"))
	assert.Equal(t, []string{"A", "B", "C"}, ParseGroups("A;B, C"))
	assert.Empty(t, ParseGroups(" ; , "))
}
