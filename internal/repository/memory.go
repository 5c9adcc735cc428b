package repository

import (
	"context"
	"sync"

	"github.com/noah-isme/scolarite-dao/internal/models"
)

// memoryDB keeps every entity in maps. Lists come out in map order, which is
// arbitrary, like a backend that does not sort.
type memoryDB struct {
	mu        sync.RWMutex
	lastID    int64
	parcours  map[int64]models.Parcours
	etudiants map[int64]etudiantRecord
	ues       map[int64]ueRecord
	notes     map[int64]models.Note
}

type etudiantRecord struct {
	etudiant   models.Etudiant
	parcoursID int64
}

type ueRecord struct {
	ue          models.UE
	parcoursIDs []int64
}

// NewMemorySet returns stores sharing one in-memory database.
func NewMemorySet() Set {
	db := &memoryDB{
		parcours:  make(map[int64]models.Parcours),
		etudiants: make(map[int64]etudiantRecord),
		ues:       make(map[int64]ueRecord),
		notes:     make(map[int64]models.Note),
	}
	return Set{
		Parcours:  &memoryParcours{db: db},
		Etudiants: &memoryEtudiants{db: db},
		UEs:       &memoryUEs{db: db},
		Notes:     &memoryNotes{db: db},
	}
}

func (m *memoryDB) nextID() int64 {
	m.lastID++
	return m.lastID
}

func (m *memoryDB) resolveEtudiant(rec etudiantRecord) models.Etudiant {
	e := rec.etudiant
	e.Parcours = nil
	if p, ok := m.parcours[rec.parcoursID]; ok {
		e.Parcours = &p
	}
	return e
}

func (m *memoryDB) resolveUE(rec ueRecord) models.UE {
	u := rec.ue
	u.Parcours = make([]models.Parcours, 0, len(rec.parcoursIDs))
	for _, id := range rec.parcoursIDs {
		if p, ok := m.parcours[id]; ok {
			u.Parcours = append(u.Parcours, p)
		}
	}
	return u
}

func (m *memoryDB) parcoursRefs(items []models.Parcours) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, p := range items {
		if _, ok := m.parcours[p.ID]; !ok {
			return nil, ErrInvalidReference
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (m *memoryDB) etudiantRef(e *models.Etudiant) (int64, error) {
	if e.Parcours == nil || e.Parcours.ID == 0 {
		return 0, nil
	}
	if _, ok := m.parcours[e.Parcours.ID]; !ok {
		return 0, ErrInvalidReference
	}
	return e.Parcours.ID, nil
}

type memoryParcours struct{ db *memoryDB }

func (r *memoryParcours) Create(ctx context.Context, p *models.Parcours) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.ID = r.db.nextID()
	r.db.parcours[p.ID] = *p
	return nil
}

func (r *memoryParcours) FindByID(ctx context.Context, id int64) (*models.Parcours, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.parcours[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *memoryParcours) Update(ctx context.Context, p *models.Parcours) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.parcours[p.ID]; !ok {
		return ErrNotFound
	}
	r.db.parcours[p.ID] = *p
	return nil
}

// Delete detaches the track from students and course units.
func (r *memoryParcours) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.parcours[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.parcours, id)
	for key, rec := range r.db.etudiants {
		if rec.parcoursID == id {
			rec.parcoursID = 0
			r.db.etudiants[key] = rec
		}
	}
	for key, rec := range r.db.ues {
		kept := rec.parcoursIDs[:0]
		for _, pid := range rec.parcoursIDs {
			if pid != id {
				kept = append(kept, pid)
			}
		}
		rec.parcoursIDs = kept
		r.db.ues[key] = rec
	}
	return nil
}

func (r *memoryParcours) List(ctx context.Context) ([]models.Parcours, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	items := make([]models.Parcours, 0, len(r.db.parcours))
	for _, p := range r.db.parcours {
		items = append(items, p)
	}
	return items, nil
}

type memoryEtudiants struct{ db *memoryDB }

func (r *memoryEtudiants) Create(ctx context.Context, e *models.Etudiant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	parcoursID, err := r.db.etudiantRef(e)
	if err != nil {
		return err
	}
	e.ID = r.db.nextID()
	r.db.etudiants[e.ID] = etudiantRecord{etudiant: *e, parcoursID: parcoursID}
	return nil
}

func (r *memoryEtudiants) FindByID(ctx context.Context, id int64) (*models.Etudiant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rec, ok := r.db.etudiants[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := r.db.resolveEtudiant(rec)
	return &e, nil
}

func (r *memoryEtudiants) Update(ctx context.Context, e *models.Etudiant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.etudiants[e.ID]; !ok {
		return ErrNotFound
	}
	parcoursID, err := r.db.etudiantRef(e)
	if err != nil {
		return err
	}
	r.db.etudiants[e.ID] = etudiantRecord{etudiant: *e, parcoursID: parcoursID}
	return nil
}

// Delete removes the student and its grades.
func (r *memoryEtudiants) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.etudiants[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.etudiants, id)
	for key, n := range r.db.notes {
		if n.EtudiantID == id {
			delete(r.db.notes, key)
		}
	}
	return nil
}

func (r *memoryEtudiants) List(ctx context.Context) ([]models.Etudiant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	items := make([]models.Etudiant, 0, len(r.db.etudiants))
	for _, rec := range r.db.etudiants {
		items = append(items, r.db.resolveEtudiant(rec))
	}
	return items, nil
}

type memoryUEs struct{ db *memoryDB }

func (r *memoryUEs) Create(ctx context.Context, u *models.UE) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	ids, err := r.db.parcoursRefs(u.Parcours)
	if err != nil {
		return err
	}
	u.ID = r.db.nextID()
	r.db.ues[u.ID] = ueRecord{ue: *u, parcoursIDs: ids}
	return nil
}

func (r *memoryUEs) FindByID(ctx context.Context, id int64) (*models.UE, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rec, ok := r.db.ues[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.db.resolveUE(rec)
	return &u, nil
}

func (r *memoryUEs) Update(ctx context.Context, u *models.UE) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.ues[u.ID]; !ok {
		return ErrNotFound
	}
	ids, err := r.db.parcoursRefs(u.Parcours)
	if err != nil {
		return err
	}
	r.db.ues[u.ID] = ueRecord{ue: *u, parcoursIDs: ids}
	return nil
}

// Delete removes the course unit and its grades.
func (r *memoryUEs) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.ues[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.ues, id)
	for key, n := range r.db.notes {
		if n.UeID == id {
			delete(r.db.notes, key)
		}
	}
	return nil
}

func (r *memoryUEs) List(ctx context.Context) ([]models.UE, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	items := make([]models.UE, 0, len(r.db.ues))
	for _, rec := range r.db.ues {
		items = append(items, r.db.resolveUE(rec))
	}
	return items, nil
}

type memoryNotes struct{ db *memoryDB }

func (r *memoryNotes) Create(ctx context.Context, n *models.Note) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.etudiants[n.EtudiantID]; !ok {
		return ErrInvalidReference
	}
	if _, ok := r.db.ues[n.UeID]; !ok {
		return ErrInvalidReference
	}
	for _, existing := range r.db.notes {
		if existing.EtudiantID == n.EtudiantID && existing.UeID == n.UeID {
			return ErrDuplicateNote
		}
	}
	n.ID = r.db.nextID()
	r.db.notes[n.ID] = *n
	return nil
}

func (r *memoryNotes) FindByID(ctx context.Context, id int64) (*models.Note, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	n, ok := r.db.notes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

// Update only changes the value; the (etudiant, ue) pair is fixed.
func (r *memoryNotes) Update(ctx context.Context, n *models.Note) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.notes[n.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Valeur = n.Valeur
	r.db.notes[n.ID] = existing
	*n = existing
	return nil
}

func (r *memoryNotes) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.notes[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.notes, id)
	return nil
}

func (r *memoryNotes) List(ctx context.Context) ([]models.Note, error) {
	return r.filter(func(models.Note) bool { return true }), nil
}

func (r *memoryNotes) ListByUE(ctx context.Context, ueID int64) ([]models.Note, error) {
	return r.filter(func(n models.Note) bool { return n.UeID == ueID }), nil
}

func (r *memoryNotes) ListByEtudiant(ctx context.Context, etudiantID int64) ([]models.Note, error) {
	return r.filter(func(n models.Note) bool { return n.EtudiantID == etudiantID }), nil
}

func (r *memoryNotes) FindByEtudiantAndUE(ctx context.Context, etudiantID, ueID int64) (*models.Note, error) {
	matches := r.filter(func(n models.Note) bool { return n.EtudiantID == etudiantID && n.UeID == ueID })
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}

func (r *memoryNotes) filter(keep func(models.Note) bool) []models.Note {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	items := make([]models.Note, 0)
	for _, n := range r.db.notes {
		if keep(n) {
			items = append(items, n)
		}
	}
	return items
}
