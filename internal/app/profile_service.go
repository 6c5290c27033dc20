package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/blob"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/common"
	"github.com/ZeeshanAfzalKhan/HireNexa-sub000/internal/domain/user"
)

type ProfileService struct {
	users user.Repository
	blobs blob.Store
}

func NewProfileService(users user.Repository, blobs blob.Store) *ProfileService {
	return &ProfileService{users: users, blobs: blobs}
}

func (s *ProfileService) Get(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name   *string
	Phone  *string
	Bio    *string
	Skills []string
	Resume *blob.Upload
	Photo  *blob.Upload
}

// Update mutates the caller's own profile. A new resume or photo replaces the
// stored blob; the old blob is removed best-effort after the new one lands.
func (s *ProfileService) Update(ctx context.Context, userID common.UUID, input UpdateProfileInput) (*user.User, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	name := account.Name
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		name = strings.TrimSpace(*input.Name)
	}
	profile := account.Profile
	if input.Phone != nil {
		profile.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Bio != nil {
		profile.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Skills != nil {
		profile.Skills = trimSkills(input.Skills)
	}
	if input.Resume != nil {
		if input.Resume.ContentType != resumeContentType {
			return nil, common.NewError(common.CodeInvalidFileType, "resume must be a PDF", nil)
		}
		uploaded, err := s.blobs.Upload(ctx, *input.Resume)
		if err != nil {
			return nil, common.NewError(common.CodeUploadFailed, "failed to upload resume", err)
		}
		if old := profile.Resume; old != nil && old.Handle != "" {
			if err := s.blobs.Remove(ctx, old.Handle); err != nil {
				slog.Warn("failed to remove previous resume", "handle", old.Handle, "err", err)
			}
		}
		profile.Resume = uploaded
	}
	if input.Photo != nil {
		if !strings.HasPrefix(input.Photo.ContentType, "image/") {
			return nil, common.NewError(common.CodeInvalidFileType, "photo must be an image", nil)
		}
		uploaded, err := s.blobs.Upload(ctx, *input.Photo)
		if err != nil {
			return nil, common.NewError(common.CodeUploadFailed, "failed to upload photo", err)
		}
		profile.PhotoURL = uploaded.URL
	}
	return s.users.UpdateProfile(ctx, userID, name, profile)
}
