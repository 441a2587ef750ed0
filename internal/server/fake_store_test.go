package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/types"
)

// fakeStore is an in-memory implementation of the store interfaces. The
// mutations that the real store implements as conditional SQL (the unique
// application index, the pending-status guard) are reproduced here under
// one mutex so race behavior matches the database semantics.
type fakeStore struct {
	mu           sync.Mutex
	accounts     map[uuid.UUID]db.Account
	resumes      map[uuid.UUID]db.Resume
	postings     map[uuid.UUID]db.Posting
	applications map[uuid.UUID]db.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[uuid.UUID]db.Account),
		resumes:      make(map[uuid.UUID]db.Resume),
		postings:     make(map[uuid.UUID]db.Posting),
		applications: make(map[uuid.UUID]db.Application),
	}
}

func (f *fakeStore) addAccount(rank types.Rank) db.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := db.Account{
		ID:               uuid.New(),
		Name:             "Account " + string(rank),
		Email:            uuid.NewString() + "@example.com",
		Rank:             rank,
		ActivationStatus: types.ActivationActive,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	f.accounts[a.ID] = a
	return a
}

func (f *fakeStore) addPosting(kind types.PostingKind, status types.PostingStatus) db.Posting {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := db.Posting{
		ID:        uuid.New(),
		Kind:      kind,
		Status:    status,
		Title:     "Posting",
		CreatedAt: time.Now(),
	}
	f.postings[p.ID] = p
	return p
}

func (f *fakeStore) setResume(accountID uuid.UUID, content types.ResumeContent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes[accountID] = db.Resume{
		ID:        uuid.New(),
		AccountID: accountID,
		Content:   content,
	}
}

func (f *fakeStore) CreateAccount(_ context.Context, name, email, phone, passwordHash string, rank types.Rank, status types.ActivationStatus) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return uuid.Nil, db.ErrUniqueViolation
		}
	}
	a := db.Account{
		ID:               uuid.New(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		Rank:             rank,
		ActivationStatus: status,
		PasswordHash:     passwordHash,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	f.accounts[a.ID] = a
	return a.ID, nil
}

func (f *fakeStore) GetAccount(_ context.Context, id uuid.UUID) (*db.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeStore) GetAccountByEmail(_ context.Context, email string) (*db.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListAccounts(_ context.Context, filters db.AccountFilters) ([]db.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rankSet := make(map[types.Rank]bool, len(filters.Ranks))
	for _, r := range filters.Ranks {
		rankSet[r] = true
	}
	var out []db.Account
	for _, a := range f.accounts {
		if !rankSet[a.Rank] {
			continue
		}
		if filters.ExcludeID != uuid.Nil && a.ID == filters.ExcludeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) UpdateAccount(_ context.Context, id uuid.UUID, update db.AccountUpdate) (*db.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Phone != nil {
		a.Phone = *update.Phone
	}
	if update.Rank != nil {
		a.Rank = *update.Rank
	}
	if update.ActivationStatus != nil {
		a.ActivationStatus = *update.ActivationStatus
	}
	a.UpdatedAt = time.Now()
	f.accounts[id] = a
	return &a, nil
}

func (f *fakeStore) DeleteAccount(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok || a.Rank == types.RankAdmin || a.Rank == types.RankSuperAdmin {
		return false, nil
	}
	delete(f.accounts, id)
	return true, nil
}

func (f *fakeStore) GetResume(_ context.Context, accountID uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resumes[accountID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeStore) EnsureResume(_ context.Context, accountID uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.resumes[accountID]; ok {
		return &r, nil
	}
	r := db.Resume{ID: uuid.New(), AccountID: accountID, CreatedAt: time.Now()}
	f.resumes[accountID] = r
	return &r, nil
}

func (f *fakeStore) SaveResume(_ context.Context, accountID uuid.UUID, content types.ResumeContent) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[accountID]
	if !ok {
		r = db.Resume{ID: uuid.New(), AccountID: accountID, CreatedAt: time.Now()}
	}
	r.Content = content
	r.UpdatedAt = time.Now()
	f.resumes[accountID] = r
	return &r, nil
}

func (f *fakeStore) GetPosting(_ context.Context, id uuid.UUID) (*db.Posting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.postings[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertApplication(_ context.Context, app *db.Application) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.applications {
		if existing.ApplicantID == app.ApplicantID && existing.PostingID == app.PostingID {
			return nil, db.ErrUniqueViolation
		}
	}
	created := *app
	created.ID = uuid.New()
	created.Status = types.ApplicationPending
	created.CreatedAt = time.Now()
	f.applications[created.ID] = created
	return &created, nil
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.applications[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeStore) ListApplicationsByApplicant(_ context.Context, applicantID uuid.UUID) ([]db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Application
	for _, a := range f.applications {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListApplicationsForReview(_ context.Context, filters db.ApplicationFilters) ([]db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rankSet := make(map[types.Rank]bool, len(filters.ApplicantRanks))
	for _, r := range filters.ApplicantRanks {
		rankSet[r] = true
	}
	var out []db.Application
	for _, a := range f.applications {
		applicant, ok := f.accounts[a.ApplicantID]
		if !ok || !rankSet[applicant.Rank] {
			continue
		}
		if filters.ExcludeApplicantID != uuid.Nil && a.ApplicantID == filters.ExcludeApplicantID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.Kind != "" && a.Kind != filters.Kind {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) ReviewApplication(_ context.Context, id uuid.UUID, reviewerID uuid.UUID, status types.ApplicationStatus, note string) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok || a.Status != types.ApplicationPending {
		return nil, nil
	}
	now := time.Now()
	a.Status = status
	a.ReviewedAt = &now
	a.ReviewerID = &reviewerID
	a.ReviewNote = note
	f.applications[id] = a
	return &a, nil
}

func (f *fakeStore) WithdrawApplication(_ context.Context, id, applicantID uuid.UUID) (*db.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[id]
	if !ok || a.ApplicantID != applicantID || a.Status != types.ApplicationPending {
		return nil, nil
	}
	a.Status = types.ApplicationWithdrawn
	f.applications[id] = a
	return &a, nil
}
