package models

import "testing"

func TestSalaryLevelString(t *testing.T) {
	tests := []struct {
		level SalaryLevel
		label string
	}{
		{SalaryBas, "Bas"},
		{SalaryMoyen, "Moyen"},
		{SalaryBon, "Bon"},
		{SalaryEleve, "Élevé"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.label {
			t.Errorf("String() = %q; want %q", got, tt.label)
		}
	}

	if got := SalaryUnknown.String(); got != "" {
		t.Errorf("SalaryUnknown.String() = %q; want empty", got)
	}
}

func TestSalaryLevelOrder(t *testing.T) {
	if !SalaryBas.Less(SalaryMoyen) || !SalaryBon.Less(SalaryEleve) || SalaryEleve.Less(SalaryBas) {
		t.Errorf("salary levels are not ordered Bas < Moyen < Bon < Élevé")
	}
}
