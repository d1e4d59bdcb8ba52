package alerts

import "testing"

func TestExtractRoute(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantRoute string
		wantRest  string
		wantOK    bool
	}{
		{
			name:      "simple marker",
			text:      "Route 12: bus delayed",
			wantRoute: "12",
			wantRest:  "bus delayed",
			wantOK:    true,
		},
		{
			name:      "escaped newlines become spaces",
			text:      `Route 12: bus delayed\nplease wait`,
			wantRoute: "12",
			wantRest:  "bus delayed please wait",
			wantOK:    true,
		},
		{
			name:      "marker removed everywhere",
			text:      "Route 5: detour at Main St Route 5: use 10th St instead",
			wantRoute: "5",
			wantRest:  "detour at Main St use 10th St instead",
			wantOK:    true,
		},
		{
			name:      "alphanumeric route token",
			text:      "Route A1: shuttle running",
			wantRoute: "A1",
			wantRest:  "shuttle running",
			wantOK:    true,
		},
		{
			name:      "surrounding whitespace trimmed",
			text:      "  Route 40: stop closed  ",
			wantRoute: "40",
			wantRest:  "stop closed",
			wantOK:    true,
		},
		{
			name:   "no marker",
			text:   "Service resumes normal schedule tomorrow",
			wantOK: false,
		},
		{
			name:   "lowercase marker is not a match",
			text:   "route 12: bus delayed",
			wantOK: false,
		},
		{
			name:   "marker without colon",
			text:   "Route 12 bus delayed",
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, rest, ok := ExtractRoute(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractRoute(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if route != tt.wantRoute {
				t.Errorf("route = %q, want %q", route, tt.wantRoute)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}
