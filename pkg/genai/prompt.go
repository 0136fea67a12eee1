package genai

import (
	"fmt"
	"strings"

	"marketplace-client/internal/constant"
	"marketplace-client/internal/entity"
)

// BuildPrompt embeds the user query and a context block of catalog entries
// into the assistant prompt. Callers pass at most the top five scored
// items.
func BuildPrompt(query string, items []entity.CatalogItem) string {
	var lines []string
	for _, item := range items {
		details := item.Details
		if details == "" {
			details = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- Service: %s, Price: %s, Details: %s", item.Title, item.Price, details))
	}

	return fmt.Sprintf(constant.AssistantPromptTemplate, query, strings.Join(lines, "\n"))
}
