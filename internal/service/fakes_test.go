package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"job-marketplace-api/internal/entity"
	"job-marketplace-api/internal/events"
	"job-marketplace-api/internal/repo"
	"job-marketplace-api/internal/repo/dbctx"
	"job-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// fakeStore is an in-memory implementation of every repository. Transactions
// are serialized and a failed transaction restores the state it started from.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	companies    map[uuid.UUID]entity.Company
	jobs         map[uuid.UUID]entity.Job
	applications map[uuid.UUID]entity.Application
	clients      map[uuid.UUID]entity.Client
	freelancers  map[uuid.UUID]entity.Freelancer
	portfolio    map[uuid.UUID]entity.PortfolioItem
	projects     map[uuid.UUID]entity.Project
	bids         map[uuid.UUID]entity.Bid

	failOn map[string]error
	// hideExisting makes the Does*Exist pre-checks miss, so only the
	// uniqueness constraint of the store can catch a duplicate.
	hideExisting bool

	commits   int
	rollbacks int
	// jobLocks lists the lock mode of every locking job read, in order.
	jobLocks []string
}

type fakeSnapshot struct {
	companies    map[uuid.UUID]entity.Company
	jobs         map[uuid.UUID]entity.Job
	applications map[uuid.UUID]entity.Application
	clients      map[uuid.UUID]entity.Client
	freelancers  map[uuid.UUID]entity.Freelancer
	portfolio    map[uuid.UUID]entity.PortfolioItem
	projects     map[uuid.UUID]entity.Project
	bids         map[uuid.UUID]entity.Bid
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies:    map[uuid.UUID]entity.Company{},
		jobs:         map[uuid.UUID]entity.Job{},
		applications: map[uuid.UUID]entity.Application{},
		clients:      map[uuid.UUID]entity.Client{},
		freelancers:  map[uuid.UUID]entity.Freelancer{},
		portfolio:    map[uuid.UUID]entity.PortfolioItem{},
		projects:     map[uuid.UUID]entity.Project{},
		bids:         map[uuid.UUID]entity.Bid{},
		failOn:       map[string]error{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func (s *fakeStore) snapshot() fakeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fakeSnapshot{
		companies:    copyMap(s.companies),
		jobs:         copyMap(s.jobs),
		applications: copyMap(s.applications),
		clients:      copyMap(s.clients),
		freelancers:  copyMap(s.freelancers),
		portfolio:    copyMap(s.portfolio),
		projects:     copyMap(s.projects),
		bids:         copyMap(s.bids),
	}
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.companies = snap.companies
	s.jobs = snap.jobs
	s.applications = snap.applications
	s.clients = snap.clients
	s.freelancers = snap.freelancers
	s.portfolio = snap.portfolio
	s.projects = snap.projects
	s.bids = snap.bids
}

func (s *fakeStore) repositories() *repo.Repositories {
	return &repo.Repositories{
		Diagnostics: s,
		TxRunner:    s,
		Company:     s,
		Job:         s,
		Application: s,
		Client:      s,
		Freelancer:  s,
		Project:     s,
		Bid:         s,
	}
}

// must be called with mu held
func (s *fakeStore) fail(op string) error {
	return s.failOn[op]
}

func (s *fakeStore) setFailure(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *fakeStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fail("Ping")
}

func (s *fakeStore) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
		s.restore(snap)
		s.rollbacks++

		return err
	}
	s.commits++

	return nil
}

func page[T any](items []T, pg *entity.PaginationInput) []T {
	if pg == nil {
		return items
	}
	if pg.Offset >= len(items) {
		return []T{}
	}
	items = items[pg.Offset:]
	if pg.Limit > 0 && pg.Limit < len(items) {
		items = items[:pg.Limit]
	}

	return items
}

// Company

func (s *fakeStore) CreateCompany(_ dbctx.Context, company *entity.Company) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *company
	c.Id = uuid.New()
	s.companies[c.Id] = c

	return c.Id, nil
}

func (s *fakeStore) GetCompanyById(_ dbctx.Context, id uuid.UUID) (*entity.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &c, nil
}

func (s *fakeStore) DoesCompanyExistById(_ dbctx.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.companies[id]
	return ok, nil
}

// Job

func (s *fakeStore) jobView(j entity.Job) entity.Job {
	j.CompanyName = s.companies[j.CompanyId].Name
	return j
}

func (s *fakeStore) CreateJob(_ dbctx.Context, job *entity.Job) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !job.Status.Valid() || !job.JobType.Valid() {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}
	j := *job
	j.Id = uuid.New()
	s.jobs[j.Id] = j

	return j.Id, nil
}

func (s *fakeStore) GetJobById(_ dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	j = s.jobView(j)

	return &j, nil
}

func (s *fakeStore) LockJobById(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	s.recordJobLock("share")
	return s.GetJobById(dbc, id)
}

func (s *fakeStore) LockJobForUpdate(dbc dbctx.Context, id uuid.UUID) (*entity.Job, error) {
	s.recordJobLock("update")
	return s.GetJobById(dbc, id)
}

func (s *fakeStore) recordJobLock(mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobLocks = append(s.jobLocks, mode)
}

func (s *fakeStore) takeJobLocks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	locks := s.jobLocks
	s.jobLocks = nil
	return locks
}

func (s *fakeStore) UpdateJob(_ dbctx.Context, job *entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("UpdateJob"); err != nil {
		return err
	}
	if !job.Status.Valid() || !job.JobType.Valid() {
		return repo_errors.ErrInvalidValue
	}
	if _, ok := s.jobs[job.Id]; !ok {
		return repo_errors.ErrNotFound
	}
	j := *job
	j.CompanyName = ""
	s.jobs[j.Id] = j

	return nil
}

func (s *fakeStore) activeJobs(match func(entity.Job) bool, pg *entity.PaginationInput) []entity.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]entity.Job, 0)
	for _, j := range s.jobs {
		if j.Status == entity.JobActive && match(j) {
			jobs = append(jobs, s.jobView(j))
		}
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].CreatedAt.After(jobs[b].CreatedAt) })

	return page(jobs, pg)
}

func (s *fakeStore) GetActiveJobs(_ dbctx.Context, pg *entity.PaginationInput) ([]entity.Job, error) {
	return s.activeJobs(func(entity.Job) bool { return true }, pg), nil
}

func (s *fakeStore) GetCompanyActiveJobs(_ dbctx.Context, companyId uuid.UUID, pg *entity.PaginationInput) ([]entity.Job, error) {
	return s.activeJobs(func(j entity.Job) bool { return j.CompanyId == companyId }, pg), nil
}

// Application

func (s *fakeStore) CreateApplication(_ dbctx.Context, application *entity.Application) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.applications {
		if a.JobId == application.JobId && a.ApplicantId == application.ApplicantId {
			return uuid.Nil, fmt.Errorf("%w: application_job_applicant_key", repo_errors.ErrDuplicate)
		}
	}
	a := *application
	a.Id = uuid.New()
	s.applications[a.Id] = a

	return a.Id, nil
}

func (s *fakeStore) GetApplicationById(_ dbctx.Context, id uuid.UUID) (*entity.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	a.JobTitle = s.jobs[a.JobId].Title

	return &a, nil
}

func (s *fakeStore) DoesApplicationExist(_ dbctx.Context, jobId uuid.UUID, applicantId uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hideExisting {
		return false, nil
	}
	for _, a := range s.applications {
		if a.JobId == jobId && a.ApplicantId == applicantId {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeStore) GetJobApplications(_ dbctx.Context, jobId uuid.UUID) ([]entity.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applications := make([]entity.Application, 0)
	for _, a := range s.applications {
		if a.JobId == jobId {
			a.JobTitle = s.jobs[a.JobId].Title
			applications = append(applications, a)
		}
	}
	sort.Slice(applications, func(a, b int) bool {
		return applications[a].AppliedAt.After(applications[b].AppliedAt)
	})

	return applications, nil
}

// Client

func (s *fakeStore) CreateClient(_ dbctx.Context, client *entity.Client) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *client
	c.Id = uuid.New()
	s.clients[c.Id] = c

	return c.Id, nil
}

func (s *fakeStore) GetClientById(_ dbctx.Context, id uuid.UUID) (*entity.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &c, nil
}

func (s *fakeStore) DoesClientExistById(_ dbctx.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.clients[id]
	return ok, nil
}

// Freelancer

func (s *fakeStore) freelancerView(f entity.Freelancer) entity.Freelancer {
	f.PortfolioCount = 0
	for _, item := range s.portfolio {
		if item.FreelancerId == f.Id {
			f.PortfolioCount++
		}
	}

	return f
}

func (s *fakeStore) CreateFreelancer(_ dbctx.Context, freelancer *entity.Freelancer) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.freelancers {
		if f.UserId == freelancer.UserId {
			return uuid.Nil, fmt.Errorf("%w: freelancer_user_id_key", repo_errors.ErrDuplicate)
		}
	}
	f := *freelancer
	f.Id = uuid.New()
	s.freelancers[f.Id] = f

	return f.Id, nil
}

func (s *fakeStore) GetFreelancerById(_ dbctx.Context, id uuid.UUID) (*entity.Freelancer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.freelancers[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	f = s.freelancerView(f)

	return &f, nil
}

func (s *fakeStore) GetFreelancerByUserId(_ dbctx.Context, userId string) (*entity.Freelancer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hideExisting {
		return nil, repo_errors.ErrNotFound
	}
	for _, f := range s.freelancers {
		if f.UserId == userId {
			f = s.freelancerView(f)
			return &f, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (s *fakeStore) DoesFreelancerExistById(_ dbctx.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.freelancers[id]
	return ok, nil
}

func (s *fakeStore) UpdateFreelancer(_ dbctx.Context, freelancer *entity.Freelancer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.freelancers[freelancer.Id]; !ok {
		return repo_errors.ErrNotFound
	}
	s.freelancers[freelancer.Id] = *freelancer

	return nil
}

func (s *fakeStore) SearchFreelancers(_ dbctx.Context, filter *entity.SearchFreelancersInput) ([]entity.Freelancer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Freelancer, 0)
	for _, f := range s.freelancers {
		if filter.Skill != "" && !containsString(f.Skills, filter.Skill) {
			continue
		}
		if filter.Country != "" && f.Country != filter.Country {
			continue
		}
		if filter.MaxHourlyRate != nil && f.HourlyRate.GreaterThan(*filter.MaxHourlyRate) {
			continue
		}
		out = append(out, s.freelancerView(f))
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].Rating.Equal(out[b].Rating) {
			return out[a].Rating.GreaterThan(out[b].Rating)
		}
		return out[a].SuccessRate > out[b].SuccessRate
	})

	return out, nil
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}

	return false
}

func (s *fakeStore) CreatePortfolioItem(_ dbctx.Context, item *entity.PortfolioItem) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *item
	p.Id = uuid.New()
	s.portfolio[p.Id] = p

	return p.Id, nil
}

func (s *fakeStore) GetPortfolioItemById(_ dbctx.Context, id uuid.UUID) (*entity.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.portfolio[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &p, nil
}

func (s *fakeStore) GetFreelancerPortfolio(_ dbctx.Context, freelancerId uuid.UUID) ([]entity.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entity.PortfolioItem, 0)
	for _, p := range s.portfolio {
		if p.FreelancerId == freelancerId {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].CreatedAt.After(items[b].CreatedAt) })

	return items, nil
}

// Project

func (s *fakeStore) projectView(p entity.Project) entity.Project {
	p.ClientName = s.clients[p.ClientId].CompanyName
	p.AssignedFreelancerName = ""
	if p.AssignedFreelancerId != nil {
		p.AssignedFreelancerName = s.freelancers[*p.AssignedFreelancerId].FullName
	}
	p.BidCount = 0
	for _, b := range s.bids {
		if b.ProjectId == p.Id {
			p.BidCount++
		}
	}

	return p
}

func (s *fakeStore) CreateProject(_ dbctx.Context, project *entity.Project) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !project.Status.Valid() || !project.SkillLevel.Valid() {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}
	p := *project
	p.Id = uuid.New()
	s.projects[p.Id] = p

	return p.Id, nil
}

func (s *fakeStore) GetProjectById(_ dbctx.Context, id uuid.UUID) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	p = s.projectView(p)

	return &p, nil
}

func (s *fakeStore) LockProjectById(_ dbctx.Context, id uuid.UUID) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return &p, nil
}

func (s *fakeStore) UpdateProject(_ dbctx.Context, project *entity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("UpdateProject"); err != nil {
		return err
	}
	if !project.Status.Valid() || !project.SkillLevel.Valid() {
		return repo_errors.ErrInvalidValue
	}
	if _, ok := s.projects[project.Id]; !ok {
		return repo_errors.ErrNotFound
	}
	p := *project
	if p.AssignedFreelancerId != nil {
		id := *p.AssignedFreelancerId
		p.AssignedFreelancerId = &id
	}
	s.projects[p.Id] = p

	return nil
}

func (s *fakeStore) projectsWhere(match func(entity.Project) bool, pg *entity.PaginationInput) []entity.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := make([]entity.Project, 0)
	for _, p := range s.projects {
		if match(p) {
			projects = append(projects, s.projectView(p))
		}
	}
	sort.Slice(projects, func(a, b int) bool { return projects[a].CreatedAt.After(projects[b].CreatedAt) })

	return page(projects, pg)
}

func (s *fakeStore) GetProjectsByStatus(_ dbctx.Context, status entity.ProjectStatus, pg *entity.PaginationInput) ([]entity.Project, error) {
	return s.projectsWhere(func(p entity.Project) bool { return p.Status == status }, pg), nil
}

func (s *fakeStore) GetClientProjects(_ dbctx.Context, clientId uuid.UUID, pg *entity.PaginationInput) ([]entity.Project, error) {
	return s.projectsWhere(func(p entity.Project) bool { return p.ClientId == clientId }, pg), nil
}

// Bid

func (s *fakeStore) CreateBid(_ dbctx.Context, bid *entity.Bid) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !bid.Status.Valid() {
		return uuid.Nil, repo_errors.ErrInvalidValue
	}
	for _, b := range s.bids {
		if b.ProjectId == bid.ProjectId && b.FreelancerId == bid.FreelancerId {
			return uuid.Nil, fmt.Errorf("%w: bid_project_freelancer_key", repo_errors.ErrDuplicate)
		}
	}
	b := *bid
	b.Id = uuid.New()
	s.bids[b.Id] = b

	return b.Id, nil
}

func (s *fakeStore) GetBidById(_ dbctx.Context, id uuid.UUID) (*entity.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	b.FreelancerName = s.freelancers[b.FreelancerId].FullName

	return &b, nil
}

func (s *fakeStore) DoesBidExist(_ dbctx.Context, projectId uuid.UUID, freelancerId uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hideExisting {
		return false, nil
	}
	for _, b := range s.bids {
		if b.ProjectId == projectId && b.FreelancerId == freelancerId {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeStore) UpdateBidStatus(_ dbctx.Context, id uuid.UUID, status entity.BidStatus, acceptedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return repo_errors.ErrInvalidValue
	}
	b, ok := s.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	b.Status = status
	if acceptedAt != nil {
		t := *acceptedAt
		b.AcceptedAt = &t
	} else {
		b.AcceptedAt = nil
	}
	s.bids[id] = b

	return nil
}

func (s *fakeStore) RejectOtherProjectBids(_ dbctx.Context, projectId uuid.UUID, keepBidId uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("RejectOtherProjectBids"); err != nil {
		return 0, err
	}
	var n int64
	for id, b := range s.bids {
		if b.ProjectId == projectId && id != keepBidId {
			b.Status = entity.BidRejected
			s.bids[id] = b
			n++
		}
	}

	return n, nil
}

func (s *fakeStore) GetProjectBids(_ dbctx.Context, projectId uuid.UUID) ([]entity.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, b := range s.bids {
		if b.ProjectId == projectId {
			b.FreelancerName = s.freelancers[b.FreelancerId].FullName
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(a, b int) bool { return bids[a].SubmittedAt.After(bids[b].SubmittedAt) })

	return bids, nil
}

// stepClock returns strictly increasing UTC instants, one second apart.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)
	return c.now
}

type testEnv struct {
	store    *fakeStore
	services *Services
	events   *events.Recorder
	clock    *stepClock
}

func newTestEnv() *testEnv {
	store := newFakeStore()
	recorder := events.NewRecorder()
	clock := newStepClock()

	return &testEnv{
		store:  store,
		events: recorder,
		clock:  clock,
		services: NewServices(store.repositories(), Dependencies{
			Publisher: recorder,
			Now:       clock.Now,
		}),
	}
}
