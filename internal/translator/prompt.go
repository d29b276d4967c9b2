package translator

import (
	"fmt"
	"strings"
)

// Marker ends every prompt. Models tend to echo it right before the
// translation, so the text after its last occurrence is the answer.
const Marker = "Hindi Translation:"

// BuildPrompt embeds sentence into the English-to-Hindi instruction.
func BuildPrompt(sentence string) string {
	return fmt.Sprintf("Translate the following sentence from English to Hindi:\n\n\"%s\"\n\n%s", sentence, Marker)
}

// ExtractTranslation returns the trimmed text following the last Marker in
// output. Models that ignore the instruction and never echo the marker get
// their whole output back.
func ExtractTranslation(output string) string {
	if i := strings.LastIndex(output, Marker); i >= 0 {
		return strings.TrimSpace(output[i+len(Marker):])
	}
	return strings.TrimSpace(output)
}
