package ai

import "testing"

func TestStripReasoning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain answer untouched",
			in:   "The meeting is on Friday.",
			want: "The meeting is on Friday.",
		},
		{
			name: "think tag stripped",
			in:   "Let me work through this...</think>The meeting is on Friday.",
			want: "The meeting is on Friday.",
		},
		{
			name: "reasoning tag stripped",
			in:   "step one, step two</reasoning>\n\nFriday.",
			want: "Friday.",
		},
		{
			name: "im_end tag stripped",
			in:   "internal monologue<|im_end|>Friday.",
			want: "Friday.",
		},
		{
			name: "only the first tag applies",
			in:   "a</think>b</reasoning>c",
			want: "b</reasoning>c",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  \n  Friday.  \n",
			want: "Friday.",
		},
		{
			name: "reasoning with no answer yields empty",
			in:   "all reasoning, no answer</think>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := stripReasoning(tt.in); got != tt.want {
				t.Errorf("stripReasoning(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
