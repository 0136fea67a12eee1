package assist

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketplace-client/internal/entity"
)

// ComposeReply builds the natural-language text around a result set. The
// output is plain text with light inline emphasis markers; no escaping is
// done, the renderer treats it as markup-free.
func ComposeReply(term string, results []entity.CatalogItem, intent SortIntent, advice string) string {
	if len(results) == 0 {
		return fmt.Sprintf(
			"I understand you're looking for help with %q, but I couldn't find any specific services listed right now.\n\nHowever, %s \n\nTry searching for broader terms like 'Cleaning' or 'Repair'.",
			term, strings.ToLower(advice),
		)
	}

	var intro string
	switch intent {
	case SortPriceAsc:
		intro = fmt.Sprintf("I found some budget-friendly options for **%s**.", term)
	case SortPriceDesc:
		intro = fmt.Sprintf("Here are the most premium **%s** services available.", term)
	default:
		intro = fmt.Sprintf("I've found some highly-rated services for **%s**.", term)
	}

	shown := len(results)
	if shown > maxDisplayed {
		shown = maxDisplayed
	}

	return fmt.Sprintf("%s\n\n💡 **Tip:** %s\n\nHere are the top %d picks I recommend based on your request:", intro, advice, shown)
}

// Responder is the deterministic local engine behind the chat assistant.
// It never fails; an empty result set is a valid answer.
type Responder struct {
	catalog []entity.CatalogItem
	advisor *Advisor
}

func NewResponder(catalog []entity.CatalogItem, advisor *Advisor) *Responder {
	return &Responder{catalog: catalog, advisor: advisor}
}

// Respond runs one full local turn: match, sort by price intent, compose.
func (r *Responder) Respond(query string) entity.ChatMessage {
	intent := ClassifyIntent(query)
	terms := Tokenize(query, matcherStopWords)

	results := r.match(terms)
	SortByPrice(results, intent)

	if len(results) > maxDisplayed {
		results = results[:maxDisplayed]
	}

	term := strings.Join(terms, " ")
	advice := r.advisor.Advice(term)
	text := ComposeReply(term, results, intent, advice)

	msgType := entity.ChatMessageTypeText
	if len(results) > 0 {
		msgType = entity.ChatMessageTypeResult
	}

	return entity.ChatMessage{
		Id:        uuid.New(),
		Text:      text,
		Sender:    entity.ChatSenderBot,
		Type:      msgType,
		Results:   results,
		CreatedAt: time.Now(),
	}
}

// match keeps items containing any search term in title or details. With
// no terms left after stop-word removal the whole catalog qualifies, so a
// bare "cheapest" style query still sorts something.
func (r *Responder) match(terms []string) []entity.CatalogItem {
	var results []entity.CatalogItem
	for _, item := range r.catalog {
		if len(terms) == 0 {
			results = append(results, item)
			continue
		}

		title := strings.ToLower(item.Title)
		details := strings.ToLower(item.Details)
		for _, term := range terms {
			if strings.Contains(title, term) || strings.Contains(details, term) {
				results = append(results, item)
				break
			}
		}
	}
	return results
}
