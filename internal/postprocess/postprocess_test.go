package postprocess

import "testing"

func TestRemoveThinkingBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no blocks", "नमस्ते दुनिया", "नमस्ते दुनिया"},
		{"think block", "<think>Hindi uses Devanagari</think>नमस्ते", "नमस्ते"},
		{"reasoning block", "<reasoning>greeting</reasoning> सुप्रभात", "सुप्रभात"},
		{"multiple blocks", "<think>a</think>नमस्ते<thinking>b</thinking>", "नमस्ते"},
		{"truncated block", "नमस्ते<think>still going", "नमस्ते"},
		{"case insensitive", "<THINK>x</THINK>नमस्ते", "नमस्ते"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeThinkingBlocks(tt.input); got != tt.expected {
				t.Errorf("removeThinkingBlocks(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemovePreamble(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "llama chat preamble",
			input:    "Sure! Here is the translation of \"Hello world\" in Hindi:\n\nनमस्ते दुनिया",
			expected: "नमस्ते दुनिया",
		},
		{
			name:     "short lead-in",
			input:    "Here's the translation: सुप्रभात",
			expected: "सुप्रभात",
		},
		{
			name:     "into hindi",
			input:    "Here is your translation into Hindi: धन्यवाद",
			expected: "धन्यवाद",
		},
		{
			name:     "label only",
			input:    "Hindi: नमस्ते",
			expected: "नमस्ते",
		},
		{
			name:     "courtesy without lead-in is kept",
			input:    "Sure thing",
			expected: "Sure thing",
		},
		{
			name:     "sentence starting with here is",
			input:    "Here is the book you wanted",
			expected: "Here is the book you wanted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removePreamble(tt.input); got != tt.expected {
				t.Errorf("removePreamble(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveTrailingNotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no note", "नमस्ते दुनिया", "नमस्ते दुनिया"},
		{"note line", "नमस्ते दुनिया\n\nNote: नमस्ते is a formal greeting.", "नमस्ते दुनिया"},
		{"parenthesised note", "सुप्रभात\n(Note: literally 'good dawn')", "सुप्रभात"},
		{"transliteration", "नमस्ते\nTransliteration: namaste", "नमस्ते"},
		{"note word inside sentence kept", "यह note: रखें", "यह note: रखें"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeTrailingNotes(tt.input); got != tt.expected {
				t.Errorf("removeTrailingNotes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveQuoteWrapping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double quotes", `"नमस्ते"`, "नमस्ते"},
		{"single quotes", "'नमस्ते'", "नमस्ते"},
		{"curly quotes", "“नमस्ते”", "नमस्ते"},
		{"guillemets", "«नमस्ते»", "नमस्ते"},
		{"mismatched", `"नमस्ते'`, `"नमस्ते'`},
		{"inner quotes kept", `उसने "हाँ" कहा`, `उसने "हाँ" कहा`},
		{"single rune", `"`, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeQuoteWrapping(tt.input); got != tt.expected {
				t.Errorf("removeQuoteWrapping(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	input := "<think>greeting</think>Sure! Here is the translation of \"Hello\" in Hindi:\n\n\"नमस्ते\"\n\nNote: This is informal."
	if got := Clean(input); got != "नमस्ते" {
		t.Errorf("Clean() = %q, want %q", got, "नमस्ते")
	}
}
