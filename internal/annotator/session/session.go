// Package session owns the interactive annotation state for one image at a
// time: the committed box set, the in-progress draw gesture and navigation
// across the uploaded image list. Persistence and image listing are external
// collaborators; the session never touches storage directly.
package session

import (
	"ShrimpVision/internal/annotator/geometry"
	"ShrimpVision/internal/annotator/schema"
	"ShrimpVision/internal/entity"
	"ShrimpVision/pkg/response"
	"ShrimpVision/pkg/utils"
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// MinBoxSize is the smallest normalized width/height a committed box may
// have. Gestures below it are accidental clicks and are dropped silently.
const MinBoxSize = 0.01

var (
	ErrNoImages       = response.NewError(http.StatusNotFound, "no images available")
	ErrNoCurrentImage = response.NewError(http.StatusNotFound, "no image is currently selected")
)

// ImageLister is the external collaborator serving the uploaded image list.
type ImageLister interface {
	List(ctx context.Context) ([]entity.ImageAsset, error)
}

// AnnotationStore is the external persistence collaborator. Get returns nil
// when no annotation exists for the image.
type AnnotationStore interface {
	Get(ctx context.Context, imageID string) (*entity.Annotation, error)
	Save(ctx context.Context, annotation entity.Annotation) (SaveResult, error)
}

type SaveResult struct {
	Success    bool
	SavedCount int
}

// Box is one labeled region while it lives in the session. Each box gets a
// stable locally generated ID at creation time; delete and update key by it
// rather than by position.
type Box struct {
	ID     string
	Rect   entity.NormalizedBox
	TypeID string
	Color  string
	AuxIDs []string
}

type Session struct {
	log       *logrus.Logger
	store     AnnotationStore
	images    ImageLister
	registry  *schema.Registry
	transform *geometry.Transformer
	utils     utils.IUtils

	list  []entity.ImageAsset
	index int

	boxes []Box

	drawing   bool
	anchorX   float64
	anchorY   float64
	candidate *Box

	selType  string
	selColor string
	selAux   []string
}

func New(
	log *logrus.Logger,
	store AnnotationStore,
	images ImageLister,
	registry *schema.Registry,
	transform *geometry.Transformer,
	u utils.IUtils,
) *Session {
	return &Session{
		log:       log,
		store:     store,
		images:    images,
		registry:  registry,
		transform: transform,
		utils:     u,
		index:     -1,
		selType:   registry.DefaultType().Name,
	}
}

// Load fetches the image list and makes the first image current.
func (s *Session) Load(ctx context.Context) error {
	list, err := s.images.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return ErrNoImages
	}

	s.list = list
	return s.setCurrent(ctx, 0)
}

// Current returns the image the session is annotating.
func (s *Session) Current() (entity.ImageAsset, error) {
	if s.index < 0 || s.index >= len(s.list) {
		return entity.ImageAsset{}, ErrNoCurrentImage
	}
	return s.list[s.index], nil
}

// Next swaps to the following image, replacing the box set wholesale with
// that image's stored annotation. Unsaved boxes on the prior image are lost;
// callers wanting persistence must save first. That matches the explicit-save
// contract, though silently discarding edits is a candidate UX fix.
func (s *Session) Next(ctx context.Context) error {
	if s.index+1 >= len(s.list) {
		return ErrNoImages
	}
	return s.setCurrent(ctx, s.index+1)
}

func (s *Session) Previous(ctx context.Context) error {
	if s.index-1 < 0 {
		return ErrNoImages
	}
	return s.setCurrent(ctx, s.index-1)
}

func (s *Session) setCurrent(ctx context.Context, idx int) error {
	img := s.list[idx]

	stored, err := s.store.Get(ctx, img.ID)
	if err != nil {
		return err
	}

	s.index = idx
	s.drawing = false
	s.candidate = nil
	s.boxes = s.boxes[:0]

	if stored == nil {
		return nil
	}

	for _, bb := range stored.BoundingBoxes {
		id, idErr := s.utils.NewULIDFromTimestamp(time.Now())
		if idErr != nil {
			return idErr
		}
		s.boxes = append(s.boxes, Box{
			ID:     id,
			Rect:   bb.NormalizedBox,
			TypeID: bb.Label,
			Color:  bb.Color,
			AuxIDs: append([]string(nil), bb.Attributes...),
		})
	}

	return nil
}

// SelectType changes the type applied to the next drawn box. The session is
// left untouched when the id is not in the registry.
func (s *Session) SelectType(typeID string) error {
	if err := s.registry.Validate(typeID, "", nil); err != nil {
		return err
	}
	s.selType = typeID
	return nil
}

// SelectColor sets the optional coloration tag; empty clears it.
func (s *Session) SelectColor(colorID string) error {
	if err := s.registry.Validate(s.selType, colorID, nil); err != nil {
		return err
	}
	s.selColor = colorID
	return nil
}

// SetAttributes replaces the auxiliary tag set for the next drawn box.
func (s *Session) SetAttributes(auxIDs []string) error {
	if err := s.registry.Validate(s.selType, "", auxIDs); err != nil {
		return err
	}
	s.selAux = dedupe(auxIDs)
	return nil
}

// PointerDown starts a draw gesture at the pointer position. Ignored while a
// gesture is already in progress; events are handled to completion one at a
// time so two gestures never overlap.
func (s *Session) PointerDown(pointerX, pointerY, canvasWidth, canvasHeight float64) {
	if s.drawing || s.index < 0 {
		return
	}

	x, y := s.transform.ToNormalized(pointerX, pointerY, canvasWidth, canvasHeight)

	s.drawing = true
	s.anchorX = x
	s.anchorY = y
	s.candidate = &Box{
		Rect:   entity.NormalizedBox{X: x, Y: y},
		TypeID: s.selType,
		Color:  s.selColor,
		AuxIDs: append([]string(nil), s.selAux...),
	}
}

// PointerMove resizes the in-progress box in place. The anchor stays fixed;
// dragging in any direction yields a top-left anchored, non-negative box.
func (s *Session) PointerMove(pointerX, pointerY, canvasWidth, canvasHeight float64) {
	if !s.drawing || s.candidate == nil {
		return
	}

	x, y := s.transform.ToNormalized(pointerX, pointerY, canvasWidth, canvasHeight)
	s.candidate.Rect = geometry.NormalizeCorners(s.anchorX, s.anchorY, x, y)
}

// PointerUp ends the gesture. The candidate is committed only when both
// dimensions exceed MinBoxSize; otherwise it is discarded without error.
// Returns whether a box was committed.
func (s *Session) PointerUp() bool {
	if !s.drawing || s.candidate == nil {
		return false
	}

	box := *s.candidate
	s.drawing = false
	s.candidate = nil

	if box.Rect.Width <= MinBoxSize || box.Rect.Height <= MinBoxSize {
		return false
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		if s.log != nil {
			s.log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to mint box ID, discarding box")
		}
		return false
	}
	box.ID = id

	s.boxes = append(s.boxes, box)
	return true
}

// Candidate exposes the in-progress box for rendering, nil when idle.
func (s *Session) Candidate() *Box {
	if !s.drawing || s.candidate == nil {
		return nil
	}
	c := *s.candidate
	c.AuxIDs = append([]string(nil), s.candidate.AuxIDs...)
	return &c
}

// Boxes returns a copy of the committed set in insertion order. The copy is
// detached; mutating it does not touch session state.
func (s *Session) Boxes() []Box {
	out := make([]Box, len(s.boxes))
	for i, b := range s.boxes {
		b.AuxIDs = append([]string(nil), b.AuxIDs...)
		out[i] = b
	}
	return out
}

// DeleteBox removes one box by its stable ID, preserving the relative order
// of the remainder. Returns false when no box carries the ID.
func (s *Session) DeleteBox(id string) bool {
	for i, b := range s.boxes {
		if b.ID == id {
			s.boxes = append(s.boxes[:i], s.boxes[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears all boxes for the current image without persisting. Navigating
// away without saving discards the reset like any other unsaved change.
func (s *Session) Reset() {
	s.boxes = s.boxes[:0]
	s.drawing = false
	s.candidate = nil
}

// Save serializes the current box set and hands it to the persistence
// collaborator. No automatic retry; on failure the in-memory boxes are
// retained so the user can try again.
func (s *Session) Save(ctx context.Context) (SaveResult, error) {
	annotation, err := s.Snapshot()
	if err != nil {
		return SaveResult{}, err
	}
	return s.store.Save(ctx, annotation)
}

// SaveOutcome is delivered on the channel returned by SaveAsync.
type SaveOutcome struct {
	Result SaveResult
	Err    error
}

// SaveAsync is the fire-and-forget save; callers wanting save-then-navigate
// semantics receive on the returned channel before moving on.
func (s *Session) SaveAsync(ctx context.Context) <-chan SaveOutcome {
	annotation, err := s.Snapshot()

	done := make(chan SaveOutcome, 1)
	if err != nil {
		done <- SaveOutcome{Err: err}
		return done
	}

	go func() {
		result, saveErr := s.store.Save(ctx, annotation)
		done <- SaveOutcome{Result: result, Err: saveErr}
	}()

	return done
}

// Snapshot builds the persisted record for the current image. TotalShrimp is
// always the box count.
func (s *Session) Snapshot() (entity.Annotation, error) {
	img, err := s.Current()
	if err != nil {
		return entity.Annotation{}, err
	}

	boxes := make([]entity.BoundingBox, 0, len(s.boxes))
	for _, b := range s.boxes {
		boxes = append(boxes, entity.BoundingBox{
			NormalizedBox: b.Rect,
			ID:            b.ID,
			Label:         b.TypeID,
			ClassID:       s.registry.ClassIDFor(b.TypeID),
			Color:         b.Color,
			Attributes:    append([]string(nil), b.AuxIDs...),
			Confidence:    1.0,
		})
	}

	return entity.Annotation{
		ImageID:       img.ID,
		ImageFilename: img.Filename,
		ImageWidth:    img.Width,
		ImageHeight:   img.Height,
		BoundingBoxes: boxes,
		TotalShrimp:   len(boxes),
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
