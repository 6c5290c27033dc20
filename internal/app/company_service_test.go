package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/company"
)

type fakeCompanyRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byID: make(map[common.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Name == c.Name {
			return nil, common.NewError(common.CodeConflict, "company already registered", nil)
		}
	}
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	stored := c
	r.byID[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[c.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.UpdatedAt = time.Now().UTC()
	stored := c
	r.byID[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byID[id]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	clone := *existing
	return &clone, nil
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []company.Company
	for _, existing := range r.byID {
		all = append(all, *existing)
	}
	return all, nil
}

func TestCompanyServiceRegister_BindsRecruiter(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	service := NewCompanyService(companies, users, &fakeBlobStore{})
	recruiter := users.seed(t, recruiterAccount(nil))

	created, err := service.Register(context.Background(), recruiter.ID, CompanyInput{
		Name:     "Acme Hiring",
		Location: "Pune",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.OwnerID != recruiter.ID {
		t.Fatal("expected recruiter to own the company")
	}
	after, err := users.GetByID(context.Background(), recruiter.ID)
	if err != nil {
		t.Fatalf("expected recruiter present, got %v", err)
	}
	if after.CompanyID == nil || *after.CompanyID != created.ID {
		t.Fatal("expected recruiter bound to the new company")
	}
}

func TestCompanyServiceRegister_Validation(t *testing.T) {
	users := newFakeUserRepo()
	service := NewCompanyService(newFakeCompanyRepo(), users, &fakeBlobStore{})
	recruiter := users.seed(t, recruiterAccount(nil))

	_, err := service.Register(context.Background(), recruiter.ID, CompanyInput{Name: "  "})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestCompanyServiceRegister_AlreadyBound(t *testing.T) {
	users := newFakeUserRepo()
	service := NewCompanyService(newFakeCompanyRepo(), users, &fakeBlobStore{})
	companyID := common.NewUUID()
	recruiter := users.seed(t, recruiterAccount(&companyID))

	_, err := service.Register(context.Background(), recruiter.ID, CompanyInput{Name: "Acme Hiring"})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict for recruiter with a company, got %v", err)
	}
}

func TestCompanyServiceUpdate_OwnershipAndLogo(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	blobs := &fakeBlobStore{}
	service := NewCompanyService(companies, users, blobs)
	owner := users.seed(t, recruiterAccount(nil))
	created, err := service.Register(context.Background(), owner.ID, CompanyInput{Name: "Acme Hiring"})
	if err != nil {
		t.Fatalf("expected registration, got %v", err)
	}

	otherAccount := recruiterAccount(nil)
	otherAccount.Email = "other@example.com"
	other := users.seed(t, otherAccount)
	name := "Acme Talent"
	_, err = service.Update(context.Background(), other.ID, created.ID, UpdateCompanyInput{Name: &name})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}

	_, err = service.Update(context.Background(), owner.ID, created.ID, UpdateCompanyInput{
		Logo: &blob.Upload{FileName: "logo.exe", ContentType: "application/octet-stream", Data: []byte("x")},
	})
	if !common.Is(err, common.CodeInvalidFileType) {
		t.Fatalf("expected invalid file type for non-image logo, got %v", err)
	}

	updated, err := service.Update(context.Background(), owner.ID, created.ID, UpdateCompanyInput{
		Name: &name,
		Logo: &blob.Upload{FileName: "logo.png", ContentType: "image/png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Name != name || updated.LogoURL == "" || updated.LogoKey == "" {
		t.Fatalf("expected name and logo applied, got %+v", updated)
	}

	// A second logo replaces the first and removes the old blob.
	firstKey := updated.LogoKey
	updated, err = service.Update(context.Background(), owner.ID, created.ID, UpdateCompanyInput{
		Logo: &blob.Upload{FileName: "logo2.png", ContentType: "image/png", Data: []byte("png")},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.LogoKey == firstKey {
		t.Fatal("expected a new logo key")
	}
	if len(blobs.removed) != 1 || blobs.removed[0] != firstKey {
		t.Fatalf("expected old logo removed, got %v", blobs.removed)
	}
}
