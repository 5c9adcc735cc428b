package dao

import "go.uber.org/zap"

// Registry groups the DAOs built once at start-up and passed to consumers.
type Registry struct {
	Etudiants *EtudiantDAO
	Parcours  *ParcoursDAO
	UEs       *UeDAO
	Notes     *NoteDAO
}

// NewRegistry builds every DAO on the same transport. metrics may be nil.
func NewRegistry(c requester, logger *zap.Logger, metrics callObserver) *Registry {
	return &Registry{
		Etudiants: NewEtudiantDAO(c, logger, metrics),
		Parcours:  NewParcoursDAO(c, logger, metrics),
		UEs:       NewUeDAO(c, logger, metrics),
		Notes:     NewNoteDAO(c, logger, metrics),
	}
}
