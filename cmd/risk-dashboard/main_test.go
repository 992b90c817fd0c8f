package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nitesh/risk_dashboard/pkg/models"
)

func TestWriteRecordJSON(t *testing.T) {
	var buf bytes.Buffer
	rec := &models.LocationInfo{Name: "Hoboken, NJ", Latitude: 40.74, Longitude: -74.03}
	if err := writeRecord(&buf, "location", "Hoboken, NJ", rec, "json"); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "Hoboken, NJ"`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestWriteRecordText(t *testing.T) {
	var buf bytes.Buffer
	rec := &models.FireRecord{StatusText: "No Incidents", RiskLevel: "Low"}
	if err := writeRecord(&buf, "fire", "Hoboken, NJ", rec, "text"); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "FIRE (Hoboken, NJ)") || !strings.Contains(out, "riskLevel:") {
		t.Errorf("output = %s", out)
	}

	buf.Reset()
	if err := writeRecord(&buf, "background", "", "https://img", "text"); err != nil {
		t.Fatalf("writeRecord: %v", err)
	}
	if buf.String() != "background: https://img\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteRecordEncodeError(t *testing.T) {
	var buf bytes.Buffer
	for _, output := range []string{"json", "text"} {
		if err := writeRecord(&buf, "weather", "", make(chan int), output); err == nil {
			t.Errorf("%s: expected an encode error", output)
		}
	}
}
