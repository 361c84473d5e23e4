package translation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptBuilder constructs system and user prompts for translation.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt builder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const systemPrompt = `You are a professional English localizer specializing in Japanese visual novels.

Rules:
1. Translate Japanese to English.
2. Use the terminology reference for character names and recurring terms.
3. Preserve ALL placeholders like {{var_1}}, {{var_2}}, etc. — copy them exactly as-is into your translation.
4. Preserve Japanese bracket quoting 「」 as English double quotes.
5. Output ONLY the English translation, nothing else.
6. Do NOT add explanations, notes, or extra text.
7. Maintain the same tone and register as the original dialogue.
8. Keep line lengths close to the original; text boxes are fixed size.`

// GetSystemPrompt returns the system prompt for translation.
func (pb *PromptBuilder) GetSystemPrompt() string {
	return systemPrompt
}

// BuildBatchUserPrompt constructs a prompt for batch translations.
func (pb *PromptBuilder) BuildBatchUserPrompt(texts []string, terminology map[string]string) string {
	var sb strings.Builder

	// Add terminology context.
	if len(terminology) > 0 {
		sb.WriteString("=== Terminology Reference ===\n")
		for ja, en := range terminology {
			sb.WriteString(fmt.Sprintf("• %s → %s\n", ja, en))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Translate each text below. Return ONLY the translations, separated by " + BatchSeparator + " delimiter, in the same order.\n\n")
	for i, t := range texts {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, t))
	}

	return sb.String()
}

// LoadTerminology reads a source→target term map from a YAML file. An
// empty path yields an empty map.
func LoadTerminology(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terminology: %w", err)
	}

	terms := make(map[string]string)
	if err := yaml.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("decode terminology %s: %w", path, err)
	}
	return terms, nil
}

// RelevantTerms filters the terminology map down to terms that actually
// occur in the given texts, keeping batch prompts small.
func RelevantTerms(terminology map[string]string, texts []string) map[string]string {
	relevant := make(map[string]string)
	for _, text := range texts {
		for ja, en := range terminology {
			if strings.Contains(text, ja) {
				relevant[ja] = en
			}
		}
	}
	return relevant
}
