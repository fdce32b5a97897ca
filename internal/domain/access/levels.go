package access

import "strings"

// Level es el nivel de acceso sobre el expediente de un paciente.
// Orden total: read < write < admin.
type Level string

const (
	LevelNone  Level = ""
	LevelRead  Level = "read"
	LevelWrite Level = "write"
	LevelAdmin Level = "admin"
)

func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelRead:
		return LevelRead, nil
	case LevelWrite:
		return LevelWrite, nil
	case LevelAdmin:
		return LevelAdmin, nil
	default:
		return LevelNone, ErrInvalidArgument
	}
}

func (l Level) rank() int {
	switch l {
	case LevelRead:
		return 1
	case LevelWrite:
		return 2
	case LevelAdmin:
		return 3
	default:
		return 0
	}
}

// Valid indica si l es uno de los niveles asignables en un grant.
func (l Level) Valid() bool { return l.rank() > 0 }

// AtLeast compara usando el orden total de niveles.
// LevelNone nunca satisface nada.
func (l Level) AtLeast(min Level) bool {
	if !l.Valid() || !min.Valid() {
		return false
	}
	return l.rank() >= min.rank()
}

// Action es lo que el sujeto quiere hacer sobre el expediente.
type Action string

const (
	ActionViewAppointment  Action = "view_record:appointment"
	ActionViewPrescription Action = "view_record:prescription"
	ActionViewVitals       Action = "view_record:vitals"
	ActionViewLabResult    Action = "view_record:lab_result"
	ActionViewNote         Action = "view_record:note"
	ActionViewProfile      Action = "view_profile"

	ActionWriteAppointment  Action = "write_record:appointment"
	ActionWritePrescription Action = "write_record:prescription"
	ActionWriteVitals       Action = "write_record:vitals"
	ActionWriteLabResult    Action = "write_record:lab_result"
	ActionWriteNote         Action = "write_record:note"

	ActionManageSharing Action = "manage_sharing"
)

var requiredLevels = map[Action]Level{
	ActionViewAppointment:   LevelRead,
	ActionViewPrescription:  LevelRead,
	ActionViewVitals:        LevelRead,
	ActionViewLabResult:     LevelRead,
	ActionViewNote:          LevelRead,
	ActionViewProfile:       LevelRead,
	ActionWriteAppointment:  LevelWrite,
	ActionWritePrescription: LevelWrite,
	ActionWriteVitals:       LevelWrite,
	ActionWriteLabResult:    LevelWrite,
	ActionWriteNote:         LevelWrite,
	ActionManageSharing:     LevelAdmin,
}

// RequiredLevel devuelve el nivel mínimo para una acción.
func RequiredLevel(a Action) (Level, bool) {
	l, ok := requiredLevels[a]
	return l, ok
}
