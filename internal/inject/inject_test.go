package inject

import "testing"

func TestFindAgentPane(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{
			name: "matches current command",
			lines: []string{
				"%0\tzsh\tzsh",
				"%1\tclaude\t~/project",
			},
			want:   "%1",
			wantOK: true,
		},
		{
			name: "matches pane title",
			lines: []string{
				"%0\tnode\trunning claude here",
			},
			want:   "%0",
			wantOK: true,
		},
		{
			name: "case insensitive",
			lines: []string{
				"%2\tzsh\tClaude Code",
			},
			want:   "%2",
			wantOK: true,
		},
		{
			name: "first match wins",
			lines: []string{
				"%0\tclaude\ta",
				"%1\tclaude\tb",
			},
			want:   "%0",
			wantOK: true,
		},
		{
			name: "no match",
			lines: []string{
				"%0\tzsh\tshell",
				"%1\tvim\teditor",
			},
			wantOK: false,
		},
		{
			name:   "empty output",
			lines:  []string{""},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findAgentPane(tt.lines)
			if ok != tt.wantOK {
				t.Fatalf("findAgentPane() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("findAgentPane() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppleScriptQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`plain text`, `plain text`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{`both \"`, `both \\\"`},
	}
	for _, tt := range tests {
		if got := appleScriptQuote(tt.input); got != tt.want {
			t.Errorf("appleScriptQuote(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
