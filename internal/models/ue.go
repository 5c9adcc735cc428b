package models

import (
	"encoding/json"
	"fmt"
)

// UE is a course unit, shared by any number of Parcours.
type UE struct {
	ID       int64      `db:"id" json:"id"`
	Intitule string     `db:"intitule" json:"intitule"`
	NumeroUe string     `db:"numero_ue" json:"numeroUe"`
	Parcours []Parcours `db:"-" json:"parcours"`
}

type ueWire struct {
	ID             int64      `json:"id"`
	IDPascal       int64      `json:"Id"`
	Intitule       string     `json:"intitule"`
	IntitulePascal string     `json:"Intitule"`
	NumeroUe       string     `json:"numeroUe"`
	NumeroUePascal string     `json:"NumeroUe"`
	Parcours       []Parcours `json:"parcours"`
	ParcoursPascal []Parcours `json:"Parcours"`
}

func (u UE) Identifier() int64 { return u.ID }

// UnmarshalJSON accepts both key casings. Parcours items may be objects or ids.
func (u *UE) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var w ueWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode ue: %w", err)
	}
	parcours := w.Parcours
	if parcours == nil {
		parcours = w.ParcoursPascal
	}
	*u = UE{
		ID:       coalesce(w.ID, w.IDPascal),
		Intitule: coalesce(w.Intitule, w.IntitulePascal),
		NumeroUe: coalesce(w.NumeroUe, w.NumeroUePascal),
		Parcours: parcours,
	}
	return nil
}

// ParcoursIDs returns the ids of the attached Parcours, in order.
func (u UE) ParcoursIDs() []int64 {
	ids := make([]int64, 0, len(u.Parcours))
	for _, p := range u.Parcours {
		ids = append(ids, p.ID)
	}
	return ids
}
