package status

import (
	"bytes"
	"testing"
)

func TestClassify_Disconnected(t *testing.T) {
	for _, charging := range []bool{false, true} {
		for _, pct := range []float64{-50, 0, 5, 50, 100} {
			rec := Classify(false, charging, pct)
			want := Record{State: Idle, Text: "Disconnected", Icon: "headset"}
			if rec != want {
				t.Errorf("Classify(false, %v, %v) = %+v, want %+v", charging, pct, rec, want)
			}
		}
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		charging bool
		pct      float64
		want     Record
	}{
		{"charging full", true, 99, Record{Good, "99%", "headset_charging"}},
		{"charging 100", true, 100, Record{Good, "100%", "headset_charging"}},
		{"charging below full", true, 98, Record{Info, "98%", "headset_charging"}},
		{"charging low", true, 3, Record{Info, "3%", "headset_charging"}},
		{"critical", false, 5, Record{Critical, "5%", "headset"}},
		{"critical zero", false, 0, Record{Critical, "0%", "headset"}},
		{"warning lower", false, 6, Record{Warning, "6%", "headset"}},
		{"warning upper", false, 15, Record{Warning, "15%", "headset"}},
		{"info", false, 16, Record{Info, "16%", "headset"}},
		{"info high", false, 87.4, Record{Info, "87%", "headset"}},
		{"fractional critical", false, 5.0001, Record{Warning, "5%", "headset"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(true, tt.charging, tt.pct); got != tt.want {
				t.Errorf("Classify(true, %v, %v) = %+v, want %+v", tt.charging, tt.pct, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"full record", Record{Good, "100%", "headset_charging"}, `{"state":"Good","text":"100%","icon":"headset_charging"}` + "\n"},
		{"disconnected", Classify(false, false, 0), `{"state":"Idle","text":"Disconnected","icon":"headset"}` + "\n"},
		{"empty", Empty(), `{"text":""}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.rec); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Write() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
