package report

import (
	"testing"

	"usmca/internal"
)

func TestGeneratePDF(t *testing.T) {
	data, err := GeneratePDF(sampleReport())
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(data[:5]))
	}
}

func TestGeneratePDFNoComponents(t *testing.T) {
	r := sampleReport()
	r.Result.Components = []internal.ComponentRecord{}
	data, err := GeneratePDF(r)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}
