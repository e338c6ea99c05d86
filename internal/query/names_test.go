package query

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flutter Mane", "fluttermane"},
		{"flutter-mane", "fluttermane"},
		{"FLUTTERMANE", "fluttermane"},
		{"Urshifu-Rapid-Strike", "urshifurapidstrike"},
		{"  Chien-Pao \t", "chienpao"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Flutter Mane", "landorus-therian", "Mr. Mime", "incineroar"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExpandPokemon(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"incin", "Incineroar"},
		{"INCIN", "Incineroar"},
		{" flutter ", "Flutter Mane"},
		{"pao", "Chien-Pao"},
		{"lando", "Landorus-Therian"},
		{"caly-s", "Calyrex-Shadow"},
		// Whole-term lookup only: no expansion inside longer words.
		{"incineroar", "incineroar"},
		{"avalugg", "avalugg"},
		{"pelipper", "pelipper"},
	}

	for _, tt := range tests {
		if got := ExpandPokemon(tt.term); got != tt.want {
			t.Errorf("ExpandPokemon(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestExpandItem(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"av", "Assault Vest"},
		{"specs", "Choice Specs"},
		{"boots", "Heavy-Duty Boots"},
		{"sash", "Focus Sash"},
		{"leftovers", "leftovers"},
	}

	for _, tt := range tests {
		if got := ExpandItem(tt.term); got != tt.want {
			t.Errorf("ExpandItem(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}
