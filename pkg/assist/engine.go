package assist

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"marketplace-client/internal/entity"
)

// SortIntent is the price ordering derived from the query wording.
type SortIntent int

const (
	SortNone SortIntent = iota
	SortPriceAsc
	SortPriceDesc
)

const (
	// maxScored caps the ranked set handed to the prompt builder.
	maxScored = 5
	// maxDisplayed caps the items attached to one chat reply.
	maxDisplayed = 3
)

// Stop words dropped before scoring.
var scoringStopWords = map[string]bool{
	"what": true, "where": true, "how": true, "when": true, "who": true,
	"show": true, "tell": true, "need": true, "want": true,
}

// Broader set used by the simple matcher behind Respond; these are filler
// words in a spoken request, not search terms.
var matcherStopWords = map[string]bool{
	"find": true, "me": true, "a": true, "the": true, "service": true,
	"for": true, "is": true, "cheapest": true, "expensive": true,
	"show": true, "list": true, "about": true, "need": true,
	"want": true, "looking": true,
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Tokenize lowercases, strips punctuation, splits on whitespace and drops
// short tokens plus the given stop-word set.
func Tokenize(query string, stopWords map[string]bool) []string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(query), "")

	var tokens []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// ScoredItem pairs a catalog item with its relevance for one query.
type ScoredItem struct {
	Item  entity.CatalogItem
	Score int
}

// Score ranks the catalog against a free-text query. A token hit in
// title+details counts 1; a title hit counts 2 more on top of that. When
// both the raw query and a title mention "ac" the item gets a flat 5-point
// boost, keeping the dominant service category on top. Output is fully
// deterministic: descending score, catalog order preserved on ties, at
// most five items.
func Score(query string, catalog []entity.CatalogItem) []ScoredItem {
	tokens := Tokenize(query, scoringStopWords)
	rawQuery := strings.ToLower(query)

	var scored []ScoredItem
	for _, item := range catalog {
		title := strings.ToLower(item.Title)
		content := title + " " + strings.ToLower(item.Details)

		score := 0
		for _, tok := range tokens {
			if strings.Contains(content, tok) {
				score++
				if strings.Contains(title, tok) {
					score += 2
				}
			}
		}

		if strings.Contains(rawQuery, "ac") && strings.Contains(title, "ac") {
			score += 5
		}

		if score > 0 {
			scored = append(scored, ScoredItem{Item: item, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxScored {
		scored = scored[:maxScored]
	}
	return scored
}

// ClassifyIntent detects a price-sort request in the query wording.
func ClassifyIntent(query string) SortIntent {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "cheap") || strings.Contains(q, "lowest") ||
		strings.Contains(q, "budget") || strings.Contains(q, "low price"):
		return SortPriceAsc
	case strings.Contains(q, "expensive") || strings.Contains(q, "highest") ||
		strings.Contains(q, "premium"):
		return SortPriceDesc
	default:
		return SortNone
	}
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ParsePrice extracts an integer amount from free-form price text such as
// "Rs 3,300". Empty or unparsable input yields 0, never an error.
func ParsePrice(price string) int {
	digits := nonDigits.ReplaceAllString(price, "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// SortByPrice reorders items in place according to the detected intent.
func SortByPrice(items []entity.CatalogItem, intent SortIntent) {
	switch intent {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return ParsePrice(items[i].Price) < ParsePrice(items[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return ParsePrice(items[i].Price) > ParsePrice(items[j].Price)
		})
	}
}
