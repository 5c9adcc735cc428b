package models

import (
	"encoding/json"
	"fmt"
)

// Note is the grade of one student in one course unit. Related entities are
// referenced by id only.
type Note struct {
	ID         int64   `db:"id" json:"id"`
	Valeur     float64 `db:"valeur" json:"valeur"`
	EtudiantID int64   `db:"etudiant_id" json:"etudiant_id"`
	UeID       int64   `db:"ue_id" json:"ue_id"`
}

type noteWire struct {
	ID           int64    `json:"id"`
	IDPascal     int64    `json:"Id"`
	Valeur       *float64 `json:"valeur"`
	ValeurPascal *float64 `json:"Valeur"`
}

func (n Note) Identifier() int64 { return n.ID }

// UnmarshalJSON accepts both casings for id and valeur. A valeur of 0 is a
// real grade and is never replaced by the PascalCase value.
func (n *Note) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var w noteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	// Foreign keys are matched on their exact snake_case spelling only;
	// struct tags would also accept Etudiant_id or UE_ID.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	etudiantID, err := exactID(keys, "etudiant_id")
	if err != nil {
		return err
	}
	ueID, err := exactID(keys, "ue_id")
	if err != nil {
		return err
	}
	*n = Note{
		ID:         coalesce(w.ID, w.IDPascal),
		EtudiantID: etudiantID,
		UeID:       ueID,
	}
	if v := coalescePtr(w.Valeur, w.ValeurPascal); v != nil {
		n.Valeur = *v
	}
	return nil
}

func exactID(keys map[string]json.RawMessage, key string) (int64, error) {
	raw, ok := keys[key]
	if !ok || isNull(raw) {
		return 0, nil
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("decode note %s: %w", key, err)
	}
	return id, nil
}
