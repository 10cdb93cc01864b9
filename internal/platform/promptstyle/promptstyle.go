package promptstyle

import "strings"

const marker = "MEDVALIDATE_PROMPT_STYLE_V1"

// ApplySystem prepends the shared guidance block to a system instruction.
// Applying it twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nGround every estimate in the inputs; when data is missing, state the assumption and stay conservative.")
	b.WriteString("\nDo not invent citations, company names presented as fact, or regulatory statutes.")
	if strings.EqualFold(strings.TrimSpace(mode), "json") {
		b.WriteString("\nReturn exactly one JSON object with the requested keys and no surrounding prose or code fences.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
