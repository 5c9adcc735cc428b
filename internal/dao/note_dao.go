package dao

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/dto"
	"github.com/noah-isme/scolarite-dao/internal/models"
	appErrors "github.com/noah-isme/scolarite-dao/pkg/errors"
)

// NoteDAO reads and writes grades on /api/notes, with lookups by course unit
// and by student.
type NoteDAO struct {
	res *resource[models.Note]
}

var _ DAO[models.Note] = (*NoteDAO)(nil)

func NewNoteDAO(c requester, logger *zap.Logger, metrics callObserver) *NoteDAO {
	return &NoteDAO{res: newResource[models.Note]("note", "/api/notes", "note", messages{
		create: "Impossible de créer la note",
		get:    "Impossible de récupérer la note",
		update: "Impossible de mettre à jour la note",
		delete: "Impossible de supprimer la note",
		list:   "Impossible de récupérer la liste des notes",
	}, c, logger, metrics)}
}

// Create records a grade; only the value and the two foreign keys are sent.
func (d *NoteDAO) Create(ctx context.Context, data models.Note) (*models.Note, error) {
	return d.res.create(ctx, dto.NewNoteCreatePayload(data))
}

func (d *NoteDAO) Get(ctx context.Context, id int64) (*models.Note, error) {
	return d.res.get(ctx, id)
}

// Update changes the grade value only.
func (d *NoteDAO) Update(ctx context.Context, id int64, data models.Note) (*models.Note, error) {
	return d.res.update(ctx, id, dto.NewNoteUpdatePayload(data))
}

func (d *NoteDAO) Delete(ctx context.Context, id int64) error {
	return d.res.delete(ctx, id)
}

func (d *NoteDAO) List(ctx context.Context) ([]models.Note, error) {
	return d.res.list(ctx)
}

// ListByCourseUnit returns the grades of one course unit ordered by id.
func (d *NoteDAO) ListByCourseUnit(ctx context.Context, ueID int64) ([]models.Note, error) {
	op := operation{name: "list_by_ue", kind: appErrors.ErrListFailed, fallback: "Impossible de récupérer les notes de l'UE"}
	return d.res.many(ctx, op, fmt.Sprintf("/api/notes/ue/%d", ueID))
}

// ListByStudent returns the grades of one student ordered by id.
func (d *NoteDAO) ListByStudent(ctx context.Context, etudiantID int64) ([]models.Note, error) {
	op := operation{name: "list_by_etudiant", kind: appErrors.ErrListFailed, fallback: "Impossible de récupérer les notes de l'étudiant"}
	return d.res.many(ctx, op, fmt.Sprintf("/api/notes/etudiant/%d", etudiantID))
}

// FindByStudentAndCourseUnit returns the grade of a student in a course unit,
// or nil when there is none. Any failure is read as "no grade". An empty
// answer counts as a successful call.
func (d *NoteDAO) FindByStudentAndCourseUnit(ctx context.Context, etudiantID, ueID int64) *models.Note {
	const opName = "find_by_etudiant_ue"
	start := time.Now()
	path := fmt.Sprintf("/api/notes/etudiant/%d/ue/%d", etudiantID, ueID)

	resp, err := d.res.client.Do(ctx, http.MethodGet, path, nil)
	var note *models.Note
	if err == nil && !isEmpty(resp.Body) {
		note, err = d.res.decodeOne(resp.Body)
	}
	if d.res.metrics != nil {
		d.res.metrics.ObserveCall(d.res.entity, opName, err, time.Since(start))
	}
	if err != nil || note == nil {
		fields := []zap.Field{
			zap.String("operation", opName),
			zap.Int64("etudiant_id", etudiantID),
			zap.Int64("ue_id", ueID),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		d.res.logger.Debug("dao_lookup_empty", fields...)
		return nil
	}
	return note
}
