package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/media"
	"github.com/dmitrijs2005/travelboard/internal/server/models"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
	"github.com/google/uuid"
)

// ContentService is the CRUD engine shared by every content kind. Input is
// validated before any upload or store call, ownership is checked before
// any write, and the image (if any) is uploaded before the record is
// written so a failed upload leaves nothing behind.
type ContentService[E models.Entity[E]] struct {
	kind   Kind[E]
	store  *store.Fallback[E]
	media  media.Uploader
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewContentService[E models.Entity[E]](kind Kind[E], st *store.Fallback[E], up media.Uploader, logger logging.Logger) *ContentService[E] {
	if up == nil {
		up = media.Disabled{}
	}
	return &ContentService[E]{
		kind:   kind,
		store:  st,
		media:  up,
		logger: logger.With("module", "content", "kind", kind.Name),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *ContentService[E]) Kind() Kind[E] { return s.kind }

func (s *ContentService[E]) List(ctx context.Context, f store.Filter) (store.ListResult[E], store.Source, error) {
	return s.store.List(ctx, f)
}

func (s *ContentService[E]) Get(ctx context.Context, id string) (E, store.Source, error) {
	return s.store.Get(ctx, id)
}

// Create builds a record from f. image is the uploaded file, nil when the
// request carried none.
func (s *ContentService[E]) Create(ctx context.Context, actor models.Identity, f Fields, image []byte) (E, store.Source, error) {
	var zero E

	e := s.kind.New()
	if err := s.kind.Apply(e, f); err != nil {
		return zero, "", err
	}
	if err := s.kind.Validate(e, s.acceptsMedia(image)); err != nil {
		return zero, "", err
	}
	if err := s.attachMedia(ctx, e, image); err != nil {
		return zero, "", err
	}

	s.kind.Stamp(e, s.newID(), actor.ID, s.now())
	created, src, err := s.store.Create(ctx, e)
	if err != nil {
		return zero, src, err
	}
	s.logger.Info(ctx, "created", "id", created.GetID(), "author_id", actor.ID, "source", string(src))
	return created, src, nil
}

// Update applies the fields present in f to the stored record. Only the
// owner or an admin may update.
func (s *ContentService[E]) Update(ctx context.Context, actor models.Identity, id string, f Fields, image []byte) (E, store.Source, error) {
	var zero E

	current, src, err := s.store.Get(ctx, id)
	if err != nil {
		return zero, src, err
	}
	if !actor.CanModify(current.GetAuthorID()) {
		return zero, src, common.ErrForbidden
	}

	e := current.Clone()
	if err := s.kind.Apply(e, f); err != nil {
		return zero, src, err
	}
	if err := s.kind.Validate(e, s.acceptsMedia(image)); err != nil {
		return zero, src, err
	}
	if err := s.attachMedia(ctx, e, image); err != nil {
		return zero, src, err
	}

	s.kind.Touch(e, s.now())
	updated, src, err := s.store.Update(ctx, e)
	if err != nil {
		return zero, src, err
	}
	s.logger.Info(ctx, "updated", "id", id, "actor_id", actor.ID, "source", string(src))
	return updated, src, nil
}

// Delete removes a record. Only the owner or an admin may delete.
func (s *ContentService[E]) Delete(ctx context.Context, actor models.Identity, id string) (store.Source, error) {
	current, src, err := s.store.Get(ctx, id)
	if err != nil {
		return src, err
	}
	if !actor.CanModify(current.GetAuthorID()) {
		return src, common.ErrForbidden
	}
	src, err = s.store.Delete(ctx, id)
	if err != nil {
		return src, err
	}
	s.logger.Info(ctx, "deleted", "id", id, "actor_id", actor.ID, "source", string(src))
	return src, nil
}

func (s *ContentService[E]) acceptsMedia(image []byte) bool {
	return image != nil && s.kind.SetMedia != nil
}

func (s *ContentService[E]) attachMedia(ctx context.Context, e E, image []byte) error {
	if !s.acceptsMedia(image) {
		return nil
	}
	url, err := s.media.Upload(ctx, image, s.kind.Folder)
	if err != nil {
		s.logger.Warn(ctx, "image upload failed", "error", err)
		return err
	}
	s.kind.SetMedia(e, url)
	return nil
}
