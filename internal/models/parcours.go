package models

import (
	"encoding/json"
	"fmt"
)

// Parcours is a track students follow during a given formation year.
type Parcours struct {
	ID             int64  `db:"id" json:"id"`
	NomParcours    string `db:"nom_parcours" json:"nomParcours"`
	AnneeFormation int    `db:"annee_formation" json:"anneeFormation"`
}

type parcoursWire struct {
	ID                   int64  `json:"id"`
	IDPascal             int64  `json:"Id"`
	NomParcours          string `json:"nomParcours"`
	NomParcoursPascal    string `json:"NomParcours"`
	AnneeFormation       int    `json:"anneeFormation"`
	AnneeFormationPascal int    `json:"AnneeFormation"`
}

// Identifier returns the server-assigned id, 0 before creation.
func (p Parcours) Identifier() int64 { return p.ID }

// UnmarshalJSON accepts both key casings, and a bare number as an id reference.
func (p *Parcours) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	if looksNumeric(data) {
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode parcours reference: %w", err)
		}
		*p = Parcours{ID: id}
		return nil
	}
	var w parcoursWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode parcours: %w", err)
	}
	*p = Parcours{
		ID:             coalesce(w.ID, w.IDPascal),
		NomParcours:    coalesce(w.NomParcours, w.NomParcoursPascal),
		AnneeFormation: coalesce(w.AnneeFormation, w.AnneeFormationPascal),
	}
	return nil
}
