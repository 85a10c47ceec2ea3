package model

// Lifecycle is the trash state of an operation.
//
//	ACTIVE ──soft delete──▶ TRASHED ──purge──▶ PURGED
//	   ▲                       │
//	   └──────restore──────────┘
type Lifecycle string

const (
	Activa     Lifecycle = "ACTIVE"
	EnPapelera Lifecycle = "TRASHED"
	Purgada    Lifecycle = "PURGED"
)

// CanTransition is total over every pair of states. An active record can
// never be purged directly and nothing leaves PURGED.
func CanTransition(from, to Lifecycle) bool {
	switch from {
	case Activa:
		return to == EnPapelera
	case EnPapelera:
		return to == Activa || to == Purgada
	case Purgada:
		return false
	default:
		return false
	}
}
