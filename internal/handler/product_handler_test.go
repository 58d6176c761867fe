package handler

import "testing"

func TestCollapseDelta(t *testing.T) {
	tests := []struct {
		name    string
		adjType string
		delta   int
		want    int
		wantErr bool
	}{
		{"in forces positive", "in", 5, 5, false},
		{"in with negative input", "in", -5, 5, false},
		{"out forces negative", "out", 15, -15, false},
		{"out with negative input", "out", -15, -15, false},
		{"adjust keeps sign", "adjust", -3, -3, false},
		{"empty type keeps sign", "", 7, 7, false},
		{"unknown type", "transfer", 5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collapseDelta(tt.adjType, tt.delta)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("collapseDelta: %v", err)
			}
			if got != tt.want {
				t.Errorf("collapseDelta(%q, %d) = %d, want %d", tt.adjType, tt.delta, got, tt.want)
			}
		})
	}
}
