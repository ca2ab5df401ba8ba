package resume

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/resumic/pkg/storage/files"
)

var ErrFileTooLarge = errors.New("file exceeds the upload size limit")

// Service orchestrates the resume stories: storing uploads, running
// extraction, and folding confirmed drafts into the merged profile.
type Service struct {
	uploads   UploadRepository
	profiles  ProfileRepository
	store     files.Store
	extractor *Extractor
	maxUpload int64
	log       *slog.Logger
}

func NewService(
	uploads UploadRepository,
	profiles ProfileRepository,
	store files.Store,
	extractor *Extractor,
	maxUpload int64,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	if maxUpload <= 0 {
		maxUpload = 5 << 20
	}
	return &Service{
		uploads:   uploads,
		profiles:  profiles,
		store:     store,
		extractor: extractor,
		maxUpload: maxUpload,
		log:       log,
	}
}

// Upload validates and stores an uploaded resume file and records its
// metadata. The file is kept verbatim so extraction can re-read it later.
func (s *Service) Upload(ctx context.Context, ownerID uuid.UUID, filename, mimeType string, data []byte) (Upload, error) {
	if !AllowedExt(filename) {
		return Upload{}, ErrUnsupportedFormat
	}
	if int64(len(data)) > s.maxUpload {
		return Upload{}, ErrFileTooLarge
	}
	if mimeType == "" {
		mimeType = MimeForFilename(filename)
	}

	id := uuid.New()
	key := id.String() + strings.ToLower(filepath.Ext(filename))
	stored, err := s.store.Put(ctx, key, mimeType, data)
	if err != nil {
		return Upload{}, err
	}

	u := Upload{
		ID:         id,
		OwnerID:    ownerID,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		StorageKey: stored.Key,
		StorageURL: stored.URL,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.uploads.Create(ctx, u); err != nil {
		return Upload{}, err
	}
	return u, nil
}

func (s *Service) Uploads(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Upload, error) {
	list, err := s.uploads.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Upload{}
	}
	return list, nil
}

// DeleteUpload removes the metadata row and then the stored file. A failed
// file removal is logged and swallowed: the row is gone, the orphan file
// is harmless.
func (s *Service) DeleteUpload(ctx context.Context, ownerID, id uuid.UUID) error {
	meta, err := s.uploads.DeleteForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, meta.StorageKey); err != nil {
		s.log.Warn("stored file cleanup failed",
			slog.String("key", meta.StorageKey), slog.String("error", err.Error()))
	}
	return nil
}

// Extract re-reads a stored upload and runs it through the model. The
// returned draft is not persisted; the client reviews it and confirms.
func (s *Service) Extract(ctx context.Context, ownerID, uploadID uuid.UUID) (Draft, error) {
	meta, err := s.uploads.GetForOwner(ctx, ownerID, uploadID)
	if err != nil {
		return Draft{}, err
	}
	data, err := s.store.Get(ctx, meta.StorageKey)
	if err != nil {
		return Draft{}, err
	}
	return s.extractor.ExtractResume(ctx, meta.Filename, data)
}

// Confirm re-validates a client-edited draft and merges it into the
// profile under the resume source. Client edits go through the same
// validation as model output.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, value any) (Profile, []MergeWarning, error) {
	d, err := Validate(ctx, value)
	if err != nil {
		return Profile{}, nil, err
	}
	return s.ApplyDraft(ctx, userID, d, SourceResume)
}

// ApplyDraft merges a validated draft from any source into the stored
// profile and persists the result atomically.
func (s *Service) ApplyDraft(ctx context.Context, userID uuid.UUID, d Draft, origin SourceTag) (Profile, []MergeWarning, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Profile{}, nil, err
	}

	merged, warns := Merge(p, d, origin, time.Now().UTC())
	for _, w := range warns {
		s.log.Warn("merge kept similar records apart",
			slog.String("userId", userID.String()),
			slog.String("field", w.Field),
			slog.String("existing", w.Existing),
			slog.String("incoming", w.Incoming),
		)
	}

	if err := s.profiles.Save(ctx, userID, merged); err != nil {
		return Profile{}, nil, err
	}
	return merged, warns, nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	return s.profiles.Get(ctx, userID)
}

// DisconnectSource drops a source's contributions and persists the result.
func (s *Service) DisconnectSource(ctx context.Context, userID uuid.UUID, origin SourceTag) (Profile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	p = Disconnect(p, origin, time.Now().UTC())
	if err := s.profiles.Save(ctx, userID, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
