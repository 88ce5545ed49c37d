package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kodamai/recruitr/internal/model"
	"github.com/kodamai/recruitr/internal/repository"
	"github.com/kodamai/recruitr/internal/service"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type stubCompletion struct {
	response string
	err      error
	lastReq  service.CompletionRequest
	calls    int
}

func (s *stubCompletion) Complete(_ context.Context, req service.CompletionRequest) (string, error) {
	s.lastReq = req
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

type sentMail struct {
	toEmail, toName, subject, body string
}

type stubMailer struct {
	err  error
	sent []sentMail
}

func (s *stubMailer) Send(toEmail, toName, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{toEmail, toName, subject, body})
	return nil
}

type fakeUserStore struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserStore) CreateUser(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindUserByID(id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeJobStore struct {
	jobs        []*model.Job
	mostApplied *repository.JobApplicationCount
}

func (f *fakeJobStore) add(job *model.Job) *model.Job {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	f.jobs = append(f.jobs, job)
	return job
}

func (f *fakeJobStore) CreateJob(job *model.Job) error {
	f.add(job)
	return nil
}

func (f *fakeJobStore) UpdateJob(job *model.Job) error {
	for i, j := range f.jobs {
		if j.ID == job.ID {
			f.jobs[i] = job
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeJobStore) FindJobByID(id uuid.UUID) (*model.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobStore) FindJobsByManager(managerID uuid.UUID) ([]model.Job, error) {
	var out []model.Job
	for _, j := range f.jobs {
		if j.HiringManagerID == managerID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) FindJobsByManagerPaged(managerID uuid.UUID, offset, limit int) ([]model.Job, int64, error) {
	all, _ := f.FindJobsByManager(managerID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeJobStore) FindOpenJobsPaged(offset, limit int) ([]model.Job, int64, error) {
	var open []model.Job
	for _, j := range f.jobs {
		if j.Status == model.JobStatusOpen {
			open = append(open, *j)
		}
	}
	total := int64(len(open))
	if offset >= len(open) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(open) {
		end = len(open)
	}
	return open[offset:end], total, nil
}

func (f *fakeJobStore) FindJobsByManagerAndTitle(managerID uuid.UUID, title string) ([]model.Job, error) {
	var out []model.Job
	for _, j := range f.jobs {
		if j.HiringManagerID == managerID &&
			strings.Contains(strings.ToLower(j.Title), strings.ToLower(title)) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) FindJobsByManagerCreatedSince(managerID uuid.UUID, since time.Time) ([]model.Job, error) {
	var out []model.Job
	for _, j := range f.jobs {
		if j.HiringManagerID == managerID && !j.CreatedAt.Before(since) {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) FindHighestSalaryJob(managerID uuid.UUID) (*model.Job, error) {
	var best *model.Job
	for _, j := range f.jobs {
		if j.HiringManagerID != managerID {
			continue
		}
		if best == nil || j.SalaryMax > best.SalaryMax {
			best = j
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeJobStore) FindMostAppliedJob(_ uuid.UUID) (*repository.JobApplicationCount, error) {
	if f.mostApplied == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.mostApplied, nil
}

// fakeApplicationStore is mutex-guarded because analysis runs on a
// background goroutine and writes back into the store.
type fakeApplicationStore struct {
	mu             sync.Mutex
	apps           map[uuid.UUID]*model.Application
	countByManager int64
	ranked         []model.Application
	updates        int
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[uuid.UUID]*model.Application{}}
}

func (f *fakeApplicationStore) CreateApplication(app *model.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	f.apps[app.ID] = app
	return nil
}

func (f *fakeApplicationStore) UpdateApplication(app *model.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apps[app.ID] = app
	f.updates++
	return nil
}

func (f *fakeApplicationStore) FindApplicationByID(id uuid.UUID) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationStore) FindApplicationsByJob(jobID uuid.UUID) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) FindApplicationsByApplicant(applicantID uuid.UUID) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Application
	for _, a := range f.apps {
		if a.ApplicantID == applicantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) CountApplicationsByManager(_ uuid.UUID) (int64, error) {
	return f.countByManager, nil
}

func (f *fakeApplicationStore) RankApplicationsByEmbedding(_ uuid.UUID, _ pgvector.Vector, topK int) ([]model.Application, error) {
	if topK < len(f.ranked) {
		return f.ranked[:topK], nil
	}
	return f.ranked, nil
}

type fakeDraftStore struct {
	drafts []*model.EmailDraft
}

func (f *fakeDraftStore) CreateDraft(draft *model.EmailDraft) error {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	draft.CreatedAt = time.Now()
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeDraftStore) UpdateDraft(draft *model.EmailDraft) error {
	for i, d := range f.drafts {
		if d.ID == draft.ID {
			f.drafts[i] = draft
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDraftStore) FindDraftByID(id uuid.UUID) (*model.EmailDraft, error) {
	for _, d := range f.drafts {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDraftStore) FindDraftsByApplication(applicationID uuid.UUID) ([]model.EmailDraft, error) {
	var out []model.EmailDraft
	for _, d := range f.drafts {
		if d.ApplicationID == applicationID {
			out = append(out, *d)
		}
	}
	return out, nil
}
