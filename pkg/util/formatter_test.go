package util

import "testing"

func TestFormatValueFactor(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{2.5e6, "Ohm", "2.500 MOhm"},
		{4700, "Ohm", "4.700 kOhm"},
		{1.5, "V", "1.500 V"},
		{0, "A", "0.000 A"},
		{0.0123, "A", "12.300 mA"},
		{-0.05, "V", "-50.000 mV"},
		{3.3e-6, "A", "3.300 uA"},
		{7e-9, "A", "7.000 nA"},
		{2e-12, "A", "2.000 pA"},
		{5e-16, "A", "5.000e-16 A"},
	}
	for _, c := range cases {
		if got := FormatValueFactor(c.value, c.unit); got != c.want {
			t.Errorf("FormatValueFactor(%g, %q) = %q, want %q", c.value, c.unit, got, c.want)
		}
	}
}
