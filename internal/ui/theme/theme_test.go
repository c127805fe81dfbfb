package theme

import "testing"

func TestCertificationColor(t *testing.T) {
	th := DefaultTheme()

	cases := map[string]string{
		"General":          string(th.CertGeneral),
		"14 Accompaniment": string(th.Cert14Accompaniment),
		"CA-PG":            string(th.CertCAPG),
		"Unrated":          string(th.Foreground),
	}
	for cert, want := range cases {
		if got := string(th.CertificationColor(cert)); got != want {
			t.Errorf("CertificationColor(%q) = %s, want %s", cert, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("catppuccin-mocha") != CatppuccinMochaTheme() {
		t.Error("Expected catppuccin-mocha theme")
	}
	if GetTheme("unknown") != DefaultTheme() {
		t.Error("Unknown names should fall back to the default theme")
	}
}
