package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/models"
	"github.com/noah-isme/scolarite-dao/pkg/export"
	"github.com/noah-isme/scolarite-dao/pkg/jobs"
)

type etudiantReader interface {
	Get(ctx context.Context, id int64) (*models.Etudiant, error)
	List(ctx context.Context) ([]models.Etudiant, error)
}

type ueReader interface {
	Get(ctx context.Context, id int64) (*models.UE, error)
	List(ctx context.Context) ([]models.UE, error)
}

type noteReader interface {
	ListByStudent(ctx context.Context, etudiantID int64) ([]models.Note, error)
	ListByCourseUnit(ctx context.Context, ueID int64) ([]models.Note, error)
}

type fileStorage interface {
	Save(name string, data []byte) (string, error)
}

// Column names of the generated documents.
const (
	ColUE       = "UE"
	ColIntitule = "Intitulé"
	ColNote     = "Note"
	ColNom      = "Nom"
	ColPrenom   = "Prénom"
	ColEmail    = "Email"

	averageLabel = "Moyenne"
)

// ExportResult describes a generated document.
type ExportResult struct {
	Path   string        `json:"path"`
	Format export.Format `json:"format"`
	Rows   int           `json:"rows"`
}

// ReleveService builds transcripts and grade sheets from the DAOs.
type ReleveService struct {
	etudiants etudiantReader
	ues       ueReader
	notes     noteReader
	storage   fileStorage
	logger    *zap.Logger
	now       func() time.Time
}

// NewReleveService constructs a ReleveService.
func NewReleveService(etudiants etudiantReader, ues ueReader, notes noteReader, storage fileStorage, logger *zap.Logger) *ReleveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReleveService{
		etudiants: etudiants,
		ues:       ues,
		notes:     notes,
		storage:   storage,
		logger:    logger,
		now:       time.Now,
	}
}

// ReleveDataset lists the grades of a student by course unit number, followed
// by the average when at least one grade exists.
func (s *ReleveService) ReleveDataset(ctx context.Context, etudiantID int64) (*models.Etudiant, export.Dataset, error) {
	etudiant, err := s.etudiants.Get(ctx, etudiantID)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	notes, err := s.notes.ListByStudent(ctx, etudiantID)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	ues, err := s.ues.List(ctx)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	byID := make(map[int64]models.UE, len(ues))
	for _, u := range ues {
		byID[u.ID] = u
	}

	rows := make([]map[string]string, 0, len(notes)+1)
	var sum float64
	for _, n := range notes {
		u, ok := byID[n.UeID]
		if !ok {
			u = models.UE{NumeroUe: fmt.Sprintf("#%d", n.UeID)}
		}
		rows = append(rows, map[string]string{
			ColUE:       u.NumeroUe,
			ColIntitule: u.Intitule,
			ColNote:     formatGrade(n.Valeur),
		})
		sum += n.Valeur
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i][ColUE] < rows[j][ColUE] })
	if len(notes) > 0 {
		rows = append(rows, map[string]string{ColUE: averageLabel, ColNote: formatGrade(sum / float64(len(notes)))})
	}
	return etudiant, export.Dataset{Headers: []string{ColUE, ColIntitule, ColNote}, Rows: rows}, nil
}

// FeuilleDataset lists the grades recorded in a course unit by student name.
func (s *ReleveService) FeuilleDataset(ctx context.Context, ueID int64) (*models.UE, export.Dataset, error) {
	ue, err := s.ues.Get(ctx, ueID)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	notes, err := s.notes.ListByCourseUnit(ctx, ueID)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	etudiants, err := s.etudiants.List(ctx)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	byID := make(map[int64]models.Etudiant, len(etudiants))
	for _, e := range etudiants {
		byID[e.ID] = e
	}

	type line struct {
		etudiant models.Etudiant
		note     models.Note
	}
	lines := make([]line, 0, len(notes))
	for _, n := range notes {
		e, ok := byID[n.EtudiantID]
		if !ok {
			e = models.Etudiant{ID: n.EtudiantID, Nom: fmt.Sprintf("#%d", n.EtudiantID)}
		}
		lines = append(lines, line{etudiant: e, note: n})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].etudiant, lines[j].etudiant
		if !strings.EqualFold(a.Nom, b.Nom) {
			return strings.ToLower(a.Nom) < strings.ToLower(b.Nom)
		}
		return strings.ToLower(a.Prenom) < strings.ToLower(b.Prenom)
	})

	rows := make([]map[string]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, map[string]string{
			ColNom:    l.etudiant.Nom,
			ColPrenom: l.etudiant.Prenom,
			ColEmail:  l.etudiant.Email,
			ColNote:   formatGrade(l.note.Valeur),
		})
	}
	return ue, export.Dataset{Headers: []string{ColNom, ColPrenom, ColEmail, ColNote}, Rows: rows}, nil
}

// Releve renders and stores the transcript of a student.
func (s *ReleveService) Releve(ctx context.Context, etudiantID int64, format export.Format) (*ExportResult, error) {
	etudiant, data, err := s.ReleveDataset(ctx, etudiantID)
	if err != nil {
		return nil, err
	}
	title := "Relevé de notes - " + etudiant.FullName()
	name := fmt.Sprintf("releves/releve_%d_%s.%s", etudiantID, s.now().UTC().Format("20060102T150405"), format)
	return s.render(data, title, name, format)
}

// FeuilleUE renders and stores the grade sheet of a course unit.
func (s *ReleveService) FeuilleUE(ctx context.Context, ueID int64, format export.Format) (*ExportResult, error) {
	ue, data, err := s.FeuilleDataset(ctx, ueID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(fmt.Sprintf("Feuille de notes - %s %s", ue.NumeroUe, ue.Intitule))
	name := fmt.Sprintf("ues/ue_%d_%s.%s", ueID, s.now().UTC().Format("20060102T150405"), format)
	return s.render(data, title, name, format)
}

// BatchItem reports the transcript generated for one student.
type BatchItem struct {
	EtudiantID int64         `json:"etudiant_id"`
	Result     *ExportResult `json:"result,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// ReleveBatch generates the transcript of every student on a bounded pool of
// workers. One failing student does not stop the others.
func (s *ReleveService) ReleveBatch(ctx context.Context, format export.Format, workers int) ([]BatchItem, error) {
	if _, err := export.RendererFor(format); err != nil {
		return nil, err
	}
	etudiants, err := s.etudiants.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(etudiants))
	tasks := make([]jobs.Task, len(etudiants))
	for i, e := range etudiants {
		items[i].EtudiantID = e.ID
		tasks[i] = jobs.Task{ID: fmt.Sprint(e.ID), Payload: i}
	}
	pool := jobs.NewPool("releves", func(ctx context.Context, task jobs.Task) error {
		i := task.Payload.(int)
		result, err := s.Releve(ctx, items[i].EtudiantID, format)
		items[i].Result = result
		return err
	}, jobs.PoolConfig{Workers: workers, Logger: s.logger})

	for i, res := range pool.Run(ctx, tasks) {
		if res.Err != nil {
			items[i].Error = res.Err.Error()
		}
	}
	return items, nil
}

func (s *ReleveService) render(data export.Dataset, title, name string, format export.Format) (*ExportResult, error) {
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(data, title)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	path, err := s.storage.Save(name, content)
	if err != nil {
		return nil, err
	}
	s.logger.Info("export generated", zap.String("path", path), zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return &ExportResult{Path: path, Format: format, Rows: len(data.Rows)}, nil
}

func formatGrade(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
