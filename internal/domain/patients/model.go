package patients

import "time"

// Sex define el sexo registrado del paciente.
// @Enum male, female, other, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexOther   Sex = "other"
	SexUnknown Sex = "unknown"
)

func normalizeSex(s string) (Sex, bool) {
	switch Sex(s) {
	case "":
		return SexUnknown, true
	case SexMale, SexFemale, SexOther, SexUnknown:
		return Sex(s), true
	default:
		return "", false
	}
}

// Patient es el expediente base. OwnerUserID es quien lo creó:
// tiene admin implícito y no revocable.
type Patient struct {
	ID          string
	OwnerUserID string
	TenantID    string

	FirstName string
	LastName  string
	Sex       Sex

	BirthDate *time.Time
	Email     string
	Phone     string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
