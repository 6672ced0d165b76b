package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/J11tendra/saac-event-management/internal/adapters/email"
	budgetdomain "github.com/J11tendra/saac-event-management/internal/domain/budget"
	collabdomain "github.com/J11tendra/saac-event-management/internal/domain/collaborator"
	"github.com/J11tendra/saac-event-management/internal/domain/event"
	"github.com/J11tendra/saac-event-management/internal/domain/identity"
	domainreimb "github.com/J11tendra/saac-event-management/internal/domain/reimbursement"
	"github.com/J11tendra/saac-event-management/internal/domain/review"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// newIDGen returns a generator producing prefix-1, prefix-2, ...
func newIDGen(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// errConflict mimics the driver's uniqueness violation message so that
// storage.IsConflict recognises it.
var errConflict = errors.New("UNIQUE constraint failed")

// --- mock stores ---

// mockEventStore implements the event store interfaces used across the
// orchestrators.
type mockEventStore struct {
	events  map[string]event.Event
	prefs   map[string]event.DatePreference
	budgets map[string]budgetdomain.Request // keyed by event ID

	createErr  error
	replaceErr error
	saveErr    error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{
		events:  make(map[string]event.Event),
		prefs:   make(map[string]event.DatePreference),
		budgets: make(map[string]budgetdomain.Request),
	}
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, sql.ErrNoRows
	}
	return e, nil
}

func (m *mockEventStore) CreateWithRelated(_ context.Context, e event.Event, prefs []event.DatePreference, req *budgetdomain.Request) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events[e.ID] = e
	for _, p := range prefs {
		m.prefs[p.ID] = p
	}
	if req != nil {
		m.budgets[req.EventID] = *req
	}
	return nil
}

func (m *mockEventStore) ReplacePreferences(_ context.Context, eventID string, prefs []event.DatePreference) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	for id, p := range m.prefs {
		if p.EventID == eventID {
			delete(m.prefs, id)
		}
	}
	for _, p := range prefs {
		m.prefs[p.ID] = p
	}
	return nil
}

func (m *mockEventStore) SaveDecision(_ context.Context, e event.Event) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventStore) GetPreference(_ context.Context, id string) (event.DatePreference, error) {
	p, ok := m.prefs[id]
	if !ok {
		return event.DatePreference{}, sql.ErrNoRows
	}
	return p, nil
}

// mockClubStore implements the club store interfaces.
type mockClubStore struct {
	byID      map[string]identity.Club
	byEmail   map[string]identity.Club
	insertErr error
}

func newMockClubStore() *mockClubStore {
	return &mockClubStore{
		byID:    make(map[string]identity.Club),
		byEmail: make(map[string]identity.Club),
	}
}

func (m *mockClubStore) add(c identity.Club) {
	m.byID[c.ID] = c
	m.byEmail[c.Email] = c
}

func (m *mockClubStore) GetByID(_ context.Context, id string) (identity.Club, error) {
	c, ok := m.byID[id]
	if !ok {
		return identity.Club{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockClubStore) GetByEmail(_ context.Context, email string) (identity.Club, error) {
	c, ok := m.byEmail[email]
	if !ok {
		return identity.Club{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockClubStore) Insert(_ context.Context, c identity.Club) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, exists := m.byEmail[c.Email]; exists {
		return errConflict
	}
	m.add(c)
	return nil
}

// mockAdminStore implements AdminStoreForReview.
type mockAdminStore struct {
	byEmail map[string]identity.Admin
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{byEmail: make(map[string]identity.Admin)}
}

func (m *mockAdminStore) GetByEmail(_ context.Context, email string) (identity.Admin, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return identity.Admin{}, sql.ErrNoRows
	}
	return a, nil
}

func (m *mockAdminStore) Insert(_ context.Context, a identity.Admin) error {
	if _, exists := m.byEmail[a.Email]; exists {
		return errConflict
	}
	m.byEmail[a.Email] = a
	return nil
}

// mockBudgetStore implements the budget store interfaces.
type mockBudgetStore struct {
	byEventID map[string]budgetdomain.Request
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{byEventID: make(map[string]budgetdomain.Request)}
}

func (m *mockBudgetStore) GetByEventID(_ context.Context, eventID string) (budgetdomain.Request, error) {
	r, ok := m.byEventID[eventID]
	if !ok {
		return budgetdomain.Request{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockBudgetStore) Insert(_ context.Context, r budgetdomain.Request) error {
	if _, exists := m.byEventID[r.EventID]; exists {
		return errConflict
	}
	m.byEventID[r.EventID] = r
	return nil
}

func (m *mockBudgetStore) SaveApproval(_ context.Context, r budgetdomain.Request) error {
	m.byEventID[r.EventID] = r
	return nil
}

// mockReviewStore implements ReviewStoreForOrchestrator.
type mockReviewStore struct {
	reviews []review.Review
}

func (m *mockReviewStore) Insert(_ context.Context, r review.Review) error {
	m.reviews = append(m.reviews, r)
	return nil
}

// mockCollaboratorStore implements CollaboratorStoreForOrchestrator.
type mockCollaboratorStore struct {
	links map[string]collabdomain.Collaborator // keyed by eventID+"/"+clubID
}

func newMockCollaboratorStore() *mockCollaboratorStore {
	return &mockCollaboratorStore{links: make(map[string]collabdomain.Collaborator)}
}

func (m *mockCollaboratorStore) Insert(_ context.Context, c collabdomain.Collaborator) error {
	key := c.EventID + "/" + c.ClubID
	if _, exists := m.links[key]; exists {
		return errConflict
	}
	m.links[key] = c
	return nil
}

func (m *mockCollaboratorStore) Delete(_ context.Context, eventID, clubID string) error {
	delete(m.links, eventID+"/"+clubID)
	return nil
}

// mockReimbursementStore implements ReimbursementStoreForOrchestrator.
type mockReimbursementStore struct {
	treasurers map[string]domainreimb.Treasurer // keyed by club ID
	claims     []domainreimb.Reimbursement
}

func newMockReimbursementStore() *mockReimbursementStore {
	return &mockReimbursementStore{treasurers: make(map[string]domainreimb.Treasurer)}
}

func (m *mockReimbursementStore) GetTreasurerByClubID(_ context.Context, clubID string) (domainreimb.Treasurer, error) {
	t, ok := m.treasurers[clubID]
	if !ok {
		return domainreimb.Treasurer{}, sql.ErrNoRows
	}
	return t, nil
}

func (m *mockReimbursementStore) SaveTreasurer(_ context.Context, t domainreimb.Treasurer) error {
	if existing, ok := m.treasurers[t.ClubID]; ok {
		t.ID = existing.ID // upsert keeps the original row ID
	}
	m.treasurers[t.ClubID] = t
	return nil
}

func (m *mockReimbursementStore) CreateReimbursement(_ context.Context, r domainreimb.Reimbursement) error {
	m.claims = append(m.claims, r)
	return nil
}

// mockSender records decision notification emails.
type mockSender struct {
	sent []email.SendRequest
	fail bool
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail {
		return email.SendResult{}, errors.New("send failed")
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock-1", SentAt: fixedTime}, nil
}

func (m *mockSender) SendBatch(ctx context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	var results []email.SendResult
	for _, req := range reqs {
		res, err := m.Send(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
