package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/application"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/job"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[common.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[common.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	clone := *account
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	clone := *account
	return &clone, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id common.UUID, name string, profile user.Profile) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.Name = name
	account.Profile = profile
	account.UpdatedAt = time.Now().UTC()
	clone := *account
	return &clone, nil
}

func (r *fakeUserRepo) SetCompany(ctx context.Context, id common.UUID, companyID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.CompanyID = &companyID
	return nil
}

func (r *fakeUserRepo) seed(t *testing.T, account user.User) *user.User {
	t.Helper()
	created, err := r.Create(context.Background(), account)
	if err != nil {
		t.Fatalf("expected user seeded, got %v", err)
	}
	return created
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	stored := j
	r.byID[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[j.ID]
	if existing == nil {
		return nil, common.NewError(common.CodeJobNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.byID[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting := r.byID[id]
	if posting == nil {
		return nil, common.NewError(common.CodeJobNotFound, "job not found", nil)
	}
	clone := *posting
	return &clone, nil
}

func (r *fakeJobRepo) List(ctx context.Context, filter job.Filter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := r.matchLocked(filter)
	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *fakeJobRepo) Count(ctx context.Context, filter job.Filter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matchLocked(filter)), nil
}

func (r *fakeJobRepo) matchLocked(filter job.Filter) []job.Job {
	keyword := strings.ToLower(filter.Keyword)
	var matched []job.Job
	for _, posting := range r.byID {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(posting.Title), keyword) &&
			!strings.Contains(strings.ToLower(posting.Description), keyword) &&
			!strings.Contains(strings.ToLower(posting.Location), keyword) {
			continue
		}
		matched = append(matched, *posting)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func (r *fakeJobRepo) ListByRecruiter(ctx context.Context, recruiterID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []job.Job
	for _, posting := range r.byID {
		if posting.CreatedBy == recruiterID {
			matched = append(matched, *posting)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps []*application.Application
	seq  int

	// hideFromLookup makes FindByJobAndApplicant miss, so the service falls
	// through to Create and hits the uniqueness check there.
	hideFromLookup bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return nil, common.NewError(common.CodeDuplicateApplication, "you have already applied to this job", nil)
		}
	}
	app.ID = common.NewUUID()
	r.seq++
	app.CreatedAt = time.Now().UTC().Add(time.Duration(r.seq) * time.Millisecond)
	app.UpdatedAt = app.CreatedAt
	stored := app
	r.apps = append(r.apps, &stored)
	clone := stored
	return &clone, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ID == id {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, common.NewError(common.CodeApplicationNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hideFromLookup {
		for _, existing := range r.apps {
			if existing.JobID == jobID && existing.ApplicantID == applicantID {
				clone := *existing
				return &clone, nil
			}
		}
	}
	return nil, common.NewError(common.CodeApplicationNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID, limit, offset int) ([]application.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []application.Detail
	for _, existing := range r.apps {
		if existing.ApplicantID == applicantID {
			matched = append(matched, application.Detail{Application: *existing})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return pageDetails(matched, limit, offset), nil
}

func (r *fakeApplicationRepo) CountByApplicant(ctx context.Context, applicantID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, existing := range r.apps {
		if existing.ApplicantID == applicantID {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID, status application.Status, limit, offset int) ([]application.Detail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []application.Detail
	for _, existing := range r.apps {
		if existing.JobID == jobID && (status == "" || existing.Status == status) {
			matched = append(matched, application.Detail{Application: *existing})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return pageDetails(matched, limit, offset), nil
}

func (r *fakeApplicationRepo) CountByJob(ctx context.Context, jobID common.UUID, status application.Status) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, existing := range r.apps {
		if existing.JobID == jobID && (status == "" || existing.Status == status) {
			count++
		}
	}
	return count, nil
}

func (r *fakeApplicationRepo) UpdateStatusIfPending(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ID != id {
			continue
		}
		if existing.Status != application.StatusPending {
			return nil, common.NewError(common.CodeInvalidStatusUpdate, "application already "+string(existing.Status), nil)
		}
		existing.Status = status
		existing.UpdatedAt = time.Now().UTC()
		clone := *existing
		return &clone, nil
	}
	return nil, common.NewError(common.CodeApplicationNotFound, "application not found", nil)
}

func pageDetails(matched []application.Detail, limit, offset int) []application.Detail {
	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

type fakeBlobStore struct {
	mu        sync.Mutex
	uploadErr error
	uploads   []blob.Upload
	removed   []string
}

func (s *fakeBlobStore) Upload(ctx context.Context, upload blob.Upload) (*blob.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	s.uploads = append(s.uploads, upload)
	key := common.NewUUID().String()
	return &blob.Object{
		FileName: upload.FileName,
		URL:      "https://cdn.test/" + key,
		Handle:   key,
	}, nil
}

func (s *fakeBlobStore) Remove(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, handle)
	return nil
}

func candidateAccount() user.User {
	return user.User{Name: "Asha Verma", Email: "asha@example.com", PasswordHash: "x", Role: user.RoleCandidate}
}

func recruiterAccount(companyID *common.UUID) user.User {
	return user.User{Name: "Ravi Singh", Email: "ravi@example.com", PasswordHash: "x", Role: user.RoleRecruiter, CompanyID: companyID}
}

func seedJob(t *testing.T, jobs *fakeJobRepo, companyID, createdBy common.UUID, closed bool) *job.Job {
	t.Helper()
	posting, err := jobs.Create(context.Background(), job.Job{
		Title:           "Backend Engineer",
		Description:     "Build and run Go services",
		Skills:          []string{"Go", "PostgreSQL"},
		Salary:          120000,
		ExperienceYears: 3,
		Location:        "Bengaluru",
		Type:            job.TypeFullTime,
		Positions:       2,
		CompanyID:       companyID,
		CreatedBy:       createdBy,
		IsClosed:        closed,
	})
	if err != nil {
		t.Fatalf("expected job seeded, got %v", err)
	}
	return posting
}

func pdfUpload() *blob.Upload {
	return &blob.Upload{FileName: "resume.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
}

func validCoverLetter() string {
	return "I have shipped several Go services and would like to join."
}

func newApplicationService(apps *fakeApplicationRepo, jobs *fakeJobRepo, users *fakeUserRepo, blobs *fakeBlobStore) *ApplicationService {
	return NewApplicationService(apps, jobs, users, blobs)
}

func TestApplicationServiceApply_UploadedResume(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	blobs := &fakeBlobStore{}
	service := newApplicationService(apps, jobs, users, blobs)

	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	created, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{
		CoverLetter: validCoverLetter(),
		Resume:      pdfUpload(),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != application.StatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.JobID != posting.ID || created.ApplicantID != candidate.ID {
		t.Fatal("expected application bound to job and applicant")
	}
	if created.Resume.Handle == "" || created.Resume.URL == "" {
		t.Fatal("expected resume object populated from upload")
	}
	if len(blobs.uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(blobs.uploads))
	}
}

func TestApplicationServiceApply_MissingJobID(t *testing.T) {
	users := newFakeUserRepo()
	service := newApplicationService(newFakeApplicationRepo(), newFakeJobRepo(), users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())

	_, err := service.Apply(context.Background(), candidate.ID, "  ", ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeMissingJobID) {
		t.Fatalf("expected missing job id error, got %v", err)
	}
}

func TestApplicationServiceApply_JobNotFound(t *testing.T) {
	users := newFakeUserRepo()
	service := newApplicationService(newFakeApplicationRepo(), newFakeJobRepo(), users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())

	_, err := service.Apply(context.Background(), candidate.ID, "not-a-uuid", ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeJobNotFound) {
		t.Fatalf("expected job not found for malformed id, got %v", err)
	}

	_, err = service.Apply(context.Background(), candidate.ID, common.NewUUID().String(), ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeJobNotFound) {
		t.Fatalf("expected job not found for unknown id, got %v", err)
	}
}

func TestApplicationServiceApply_ClosedJob(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	service := newApplicationService(newFakeApplicationRepo(), jobs, users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), true)

	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeJobClosed) {
		t.Fatalf("expected job closed error, got %v", err)
	}
}

func TestApplicationServiceApply_Duplicate(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	if _, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()}); err != nil {
		t.Fatalf("expected first application accepted, got %v", err)
	}
	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeDuplicateApplication) {
		t.Fatalf("expected duplicate application error, got %v", err)
	}
}

func TestApplicationServiceApply_DuplicateRace(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	if _, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()}); err != nil {
		t.Fatalf("expected first application accepted, got %v", err)
	}
	// Simulate a concurrent insert landing between the existence check and
	// the write: the lookup misses but the storage constraint still fires.
	apps.hideFromLookup = true
	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeDuplicateApplication) {
		t.Fatalf("expected duplicate surfaced from storage constraint, got %v", err)
	}
}

func TestApplicationServiceApply_CoverLetterBounds(t *testing.T) {
	cases := []struct {
		name   string
		length int
		wantOK bool
	}{
		{"empty is allowed", 0, true},
		{"below minimum", 19, false},
		{"at minimum", 20, true},
		{"at maximum", 5000, true},
		{"above maximum", 5001, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := newFakeUserRepo()
			jobs := newFakeJobRepo()
			service := newApplicationService(newFakeApplicationRepo(), jobs, users, &fakeBlobStore{})
			candidate := users.seed(t, candidateAccount())
			posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

			_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{
				CoverLetter: strings.Repeat("a", tc.length),
				Resume:      pdfUpload(),
			})
			if tc.wantOK && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if !tc.wantOK && !common.Is(err, common.CodeInvalidCoverLetter) {
				t.Fatalf("expected invalid cover letter error, got %v", err)
			}
		})
	}
}

func TestApplicationServiceApply_RejectsNonPDF(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	blobs := &fakeBlobStore{}
	service := newApplicationService(newFakeApplicationRepo(), jobs, users, blobs)
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{
		Resume: &blob.Upload{FileName: "resume.docx", ContentType: "application/msword", Data: []byte("doc")},
	})
	if !common.Is(err, common.CodeInvalidFileType) {
		t.Fatalf("expected invalid file type error, got %v", err)
	}
	if len(blobs.uploads) != 0 {
		t.Fatal("expected no upload for rejected file type")
	}
}

func TestApplicationServiceApply_ProfileResumeFallback(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	blobs := &fakeBlobStore{}
	service := newApplicationService(apps, jobs, users, blobs)

	account := candidateAccount()
	account.Profile.Resume = &blob.Object{FileName: "saved.pdf", URL: "https://cdn.test/saved", Handle: "saved"}
	candidate := users.seed(t, account)
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	created, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{CoverLetter: validCoverLetter()})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Resume.Handle != "saved" {
		t.Fatalf("expected saved profile resume, got %q", created.Resume.Handle)
	}
	if len(blobs.uploads) != 0 {
		t.Fatal("expected no upload when profile resume is reused")
	}
}

func TestApplicationServiceApply_MissingResume(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	service := newApplicationService(newFakeApplicationRepo(), jobs, users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{CoverLetter: validCoverLetter()})
	if !common.Is(err, common.CodeMissingResume) {
		t.Fatalf("expected missing resume error, got %v", err)
	}
}

func TestApplicationServiceApply_UploadFailureDoesNotPersist(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	blobs := &fakeBlobStore{uploadErr: errors.New("storage unavailable")}
	service := newApplicationService(apps, jobs, users, blobs)
	candidate := users.seed(t, candidateAccount())
	posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)

	_, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if !common.Is(err, common.CodeUploadFailed) {
		t.Fatalf("expected upload failed error, got %v", err)
	}
	if len(apps.apps) != 0 {
		t.Fatal("expected no application persisted after failed upload")
	}
}

func TestApplicationServiceListByApplicant_NewestFirstPaged(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})
	candidate := users.seed(t, candidateAccount())

	var postings []*job.Job
	for i := 0; i < 3; i++ {
		posting := seedJob(t, jobs, common.NewUUID(), common.NewUUID(), false)
		postings = append(postings, posting)
		if _, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()}); err != nil {
			t.Fatalf("expected application %d accepted, got %v", i, err)
		}
	}

	items, page, err := service.ListByApplicant(context.Background(), candidate.ID, 1, 2)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if page.CurrentPage != 1 || page.TotalPages != 2 || page.Total != 3 {
		t.Fatalf("expected page 1/2 of 3, got %+v", page)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].JobID != postings[2].ID {
		t.Fatal("expected newest application first")
	}

	items, page, err = service.ListByApplicant(context.Background(), candidate.ID, 2, 2)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if page.CurrentPage != 2 || len(items) != 1 {
		t.Fatalf("expected 1 item on page 2, got %d", len(items))
	}
	if items[0].JobID != postings[0].ID {
		t.Fatal("expected oldest application on last page")
	}
}

func TestApplicationServiceListByJob_OwnershipAndFilter(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})

	companyID := common.NewUUID()
	owner := users.seed(t, recruiterAccount(&companyID))
	otherCompanyID := common.NewUUID()
	outsiderAccount := recruiterAccount(&otherCompanyID)
	outsiderAccount.Email = "other@example.com"
	outsider := users.seed(t, outsiderAccount)
	posting := seedJob(t, jobs, companyID, owner.ID, false)

	first := users.seed(t, user.User{Name: "A", Email: "a@example.com", PasswordHash: "x", Role: user.RoleCandidate})
	second := users.seed(t, user.User{Name: "B", Email: "b@example.com", PasswordHash: "x", Role: user.RoleCandidate})
	firstApp, err := service.Apply(context.Background(), first.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := service.Apply(context.Background(), second.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()}); err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), owner.ID, firstApp.ID.String(), "accepted"); err != nil {
		t.Fatalf("expected status update, got %v", err)
	}

	_, _, err = service.ListByJob(context.Background(), outsider.ID, posting.ID.String(), "", 1, 10)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for another company's recruiter, got %v", err)
	}

	items, page, err := service.ListByJob(context.Background(), owner.ID, posting.ID.String(), "", 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if page.Total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 applications, got %d (total %d)", len(items), page.Total)
	}

	items, page, err = service.ListByJob(context.Background(), owner.ID, posting.ID.String(), "accepted", 1, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if page.Total != 1 || len(items) != 1 || items[0].ID != firstApp.ID {
		t.Fatalf("expected only the accepted application, got %d (total %d)", len(items), page.Total)
	}

	_, _, err = service.ListByJob(context.Background(), owner.ID, posting.ID.String(), "bogus", 1, 10)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for bad status filter, got %v", err)
	}
}

func TestApplicationServiceUpdateStatus_AcceptsCaseInsensitive(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})

	companyID := common.NewUUID()
	owner := users.seed(t, recruiterAccount(&companyID))
	posting := seedJob(t, jobs, companyID, owner.ID, false)
	candidate := users.seed(t, candidateAccount())
	submitted, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}

	updated, err := service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "Accepted")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
}

func TestApplicationServiceUpdateStatus_TerminalIsFinal(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})

	companyID := common.NewUUID()
	owner := users.seed(t, recruiterAccount(&companyID))
	posting := seedJob(t, jobs, companyID, owner.ID, false)
	candidate := users.seed(t, candidateAccount())
	submitted, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}

	if _, err := service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "rejected"); err != nil {
		t.Fatalf("expected first transition, got %v", err)
	}
	_, err = service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "accepted")
	if !common.Is(err, common.CodeInvalidStatusUpdate) {
		t.Fatalf("expected invalid status update on terminal state, got %v", err)
	}
	current, err := service.apps.GetByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("expected application still present, got %v", err)
	}
	if current.Status != application.StatusRejected {
		t.Fatalf("expected status unchanged after rejected transition, got %s", current.Status)
	}
}

func TestApplicationServiceUpdateStatus_Validation(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})

	companyID := common.NewUUID()
	owner := users.seed(t, recruiterAccount(&companyID))
	posting := seedJob(t, jobs, companyID, owner.ID, false)
	candidate := users.seed(t, candidateAccount())
	submitted, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}

	_, err = service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "  ")
	if !common.Is(err, common.CodeMissingStatus) {
		t.Fatalf("expected missing status error, got %v", err)
	}
	_, err = service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "archived")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	_, err = service.UpdateStatus(context.Background(), owner.ID, submitted.ID.String(), "pending")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for pending target, got %v", err)
	}
	_, err = service.UpdateStatus(context.Background(), owner.ID, "not-a-uuid", "accepted")
	if !common.Is(err, common.CodeApplicationNotFound) {
		t.Fatalf("expected application not found for malformed id, got %v", err)
	}
}

func TestApplicationServiceUpdateStatus_Tenancy(t *testing.T) {
	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo()
	service := newApplicationService(apps, jobs, users, &fakeBlobStore{})

	companyID := common.NewUUID()
	owner := users.seed(t, recruiterAccount(&companyID))
	posting := seedJob(t, jobs, companyID, owner.ID, false)
	candidate := users.seed(t, candidateAccount())
	submitted, err := service.Apply(context.Background(), candidate.ID, posting.ID.String(), ApplyInput{Resume: pdfUpload()})
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}

	otherCompanyID := common.NewUUID()
	outsiderAccount := recruiterAccount(&otherCompanyID)
	outsiderAccount.Email = "outsider@example.com"
	outsider := users.seed(t, outsiderAccount)
	_, err = service.UpdateStatus(context.Background(), outsider.ID, submitted.ID.String(), "accepted")
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for another company's recruiter, got %v", err)
	}

	unattachedAccount := recruiterAccount(nil)
	unattachedAccount.Email = "unattached@example.com"
	unattached := users.seed(t, unattachedAccount)
	_, err = service.UpdateStatus(context.Background(), unattached.ID, submitted.ID.String(), "accepted")
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for recruiter without a company, got %v", err)
	}

	current, err := apps.GetByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("expected application present, got %v", err)
	}
	if current.Status != application.StatusPending {
		t.Fatalf("expected status untouched by denied updates, got %s", current.Status)
	}
}
