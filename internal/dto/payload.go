package dto

import "github.com/noah-isme/scolarite-dao/internal/models"

// Write payloads only carry the mutable fields of an entity, never its id.

// ParcoursRef is the partial Parcours embedded in student writes.
type ParcoursRef struct {
	ID             int64  `json:"id" validate:"required"`
	NomParcours    string `json:"nomParcours"`
	AnneeFormation int    `json:"anneeFormation"`
}

// EtudiantPayload is sent on student create and update.
type EtudiantPayload struct {
	Nom      string       `json:"nom" validate:"required"`
	Prenom   string       `json:"prenom" validate:"required"`
	Email    string       `json:"email" validate:"required,email"`
	Parcours *ParcoursRef `json:"parcours" validate:"omitempty"`
}

// ParcoursPayload is sent on track create and update.
type ParcoursPayload struct {
	NomParcours    string `json:"nomParcours" validate:"required"`
	AnneeFormation int    `json:"anneeFormation" validate:"required"`
}

// UePayload is sent on course unit create and update. Parcours are referenced by id.
type UePayload struct {
	Intitule string  `json:"intitule" validate:"required"`
	NumeroUe string  `json:"numeroUe" validate:"required"`
	Parcours []int64 `json:"parcours"`
}

// NoteCreatePayload is sent when a grade is recorded.
type NoteCreatePayload struct {
	EtudiantID int64    `json:"etudiant_id" validate:"required"`
	UeID       int64    `json:"ue_id" validate:"required"`
	Valeur     *float64 `json:"valeur" validate:"required,gte=0,lte=20"`
}

// NoteUpdatePayload only carries the grade value; the pair it belongs to is fixed.
type NoteUpdatePayload struct {
	Valeur *float64 `json:"valeur" validate:"required,gte=0,lte=20"`
}

func NewEtudiantPayload(e models.Etudiant) EtudiantPayload {
	payload := EtudiantPayload{Nom: e.Nom, Prenom: e.Prenom, Email: e.Email}
	if e.Parcours != nil {
		payload.Parcours = &ParcoursRef{
			ID:             e.Parcours.ID,
			NomParcours:    e.Parcours.NomParcours,
			AnneeFormation: e.Parcours.AnneeFormation,
		}
	}
	return payload
}

func NewParcoursPayload(p models.Parcours) ParcoursPayload {
	return ParcoursPayload{NomParcours: p.NomParcours, AnneeFormation: p.AnneeFormation}
}

func NewUePayload(u models.UE) UePayload {
	return UePayload{Intitule: u.Intitule, NumeroUe: u.NumeroUe, Parcours: u.ParcoursIDs()}
}

func NewNoteCreatePayload(n models.Note) NoteCreatePayload {
	valeur := n.Valeur
	return NoteCreatePayload{EtudiantID: n.EtudiantID, UeID: n.UeID, Valeur: &valeur}
}

func NewNoteUpdatePayload(n models.Note) NoteUpdatePayload {
	valeur := n.Valeur
	return NoteUpdatePayload{Valeur: &valeur}
}
