package models

import (
	"encoding/json"
	"fmt"
)

// Etudiant is a student, optionally enrolled in one Parcours.
type Etudiant struct {
	ID       int64     `db:"id" json:"id"`
	Nom      string    `db:"nom" json:"nom"`
	Prenom   string    `db:"prenom" json:"prenom"`
	Email    string    `db:"email" json:"email"`
	Parcours *Parcours `db:"-" json:"parcours"`
}

type etudiantWire struct {
	ID             int64     `json:"id"`
	IDPascal       int64     `json:"Id"`
	Nom            string    `json:"nom"`
	NomPascal      string    `json:"Nom"`
	Prenom         string    `json:"prenom"`
	PrenomPascal   string    `json:"Prenom"`
	Email          string    `json:"email"`
	EmailPascal    string    `json:"Email"`
	Parcours       *Parcours `json:"parcours"`
	ParcoursPascal *Parcours `json:"Parcours"`
}

func (e Etudiant) Identifier() int64 { return e.ID }

// UnmarshalJSON accepts both key casings, for the student and its Parcours.
func (e *Etudiant) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var w etudiantWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode etudiant: %w", err)
	}
	*e = Etudiant{
		ID:       coalesce(w.ID, w.IDPascal),
		Nom:      coalesce(w.Nom, w.NomPascal),
		Prenom:   coalesce(w.Prenom, w.PrenomPascal),
		Email:    coalesce(w.Email, w.EmailPascal),
		Parcours: coalescePtr(w.Parcours, w.ParcoursPascal),
	}
	return nil
}

// FullName renders "Prenom Nom".
func (e Etudiant) FullName() string {
	switch {
	case e.Prenom == "":
		return e.Nom
	case e.Nom == "":
		return e.Prenom
	}
	return e.Prenom + " " + e.Nom
}
