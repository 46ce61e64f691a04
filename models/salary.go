package models

// SalaryLevel is an ordered category: Bas < Moyen < Bon < Élevé.
// The zero value is invalid so that an unscored offer is detectable.
type SalaryLevel int

const (
	SalaryUnknown SalaryLevel = iota
	SalaryBas
	SalaryMoyen
	SalaryBon
	SalaryEleve
)

var salaryLabels = map[SalaryLevel]string{
	SalaryBas:   "Bas",
	SalaryMoyen: "Moyen",
	SalaryBon:   "Bon",
	SalaryEleve: "Élevé",
}

// SalaryLevels lists the valid levels in ascending order.
func SalaryLevels() []SalaryLevel {
	return []SalaryLevel{SalaryBas, SalaryMoyen, SalaryBon, SalaryEleve}
}

func (l SalaryLevel) String() string {
	if s, ok := salaryLabels[l]; ok {
		return s
	}
	return ""
}

// Less reports whether l ranks strictly below other.
func (l SalaryLevel) Less(other SalaryLevel) bool {
	return l < other
}
