package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-client/internal/entity"
)

func testCatalog() []entity.CatalogItem {
	return []entity.CatalogItem{
		{Id: "1", Title: "AC General Service", Price: "Rs  3300", Details: "- Per AC (1 to 2.5 tons)"},
		{Id: "2", Title: "AC Installation", Price: "Rs  5100", Details: "- Installation with 10 Feet pipe"},
		{Id: "3", Title: "AC Repairing", Price: "Rs  1000", Details: "- Visit and Inspection Charges"},
		{Id: "4", Title: "Mixer Tap Installation", Price: "Rs  950", Details: "- Per Tap"},
		{Id: "5", Title: "Kitchen Drain Cleaning", Price: "Rs  1500", Details: "- Clogged pipe opening"},
		{Id: "6", Title: "Deep House Cleaning", Price: "Rs  12000", Details: "- Full house deep cleaning"},
	}
}

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("What do I need? Show me AC repair!", scoringStopWords)
	assert.Equal(t, []string{"repair"}, tokens)
}

func TestScoreDeterminism(t *testing.T) {
	catalog := testCatalog()
	first := Score("AC repair", catalog)
	second := Score("AC repair", catalog)
	assert.Equal(t, first, second)
}

func TestScoreTitleBoost(t *testing.T) {
	catalog := []entity.CatalogItem{
		{Id: "a", Title: "General Service", Details: "includes drain flushing"},
		{Id: "b", Title: "Drain Cleaning", Details: "general service included"},
	}

	scored := Score("drain cleaning", catalog)
	require.Len(t, scored, 2)
	assert.Equal(t, "b", scored[0].Item.Id, "title hits outrank details-only hits")
	assert.Greater(t, scored[0].Score, scored[1].Score)
}

func TestScoreACBonus(t *testing.T) {
	catalog := []entity.CatalogItem{
		{Id: "details-only", Title: "Cooling Unit Checkup", Details: "full ac gas service"},
		{Id: "title-match", Title: "AC Service", Details: "full gas service"},
	}

	scored := Score("need ac service", catalog)
	require.Len(t, scored, 2)
	assert.Equal(t, "title-match", scored[0].Item.Id)

	// Without "ac" in the query the bonus never applies.
	for _, s := range Score("gas service", catalog) {
		assert.Less(t, s.Score, 5)
	}
}

func TestScoreTruncatesToFive(t *testing.T) {
	var catalog []entity.CatalogItem
	for i := 0; i < 10; i++ {
		catalog = append(catalog, entity.CatalogItem{Id: string(rune('a' + i)), Title: "AC Service"})
	}

	scored := Score("ac service", catalog)
	assert.Len(t, scored, 5)
}

func TestScoreStableOnTies(t *testing.T) {
	catalog := []entity.CatalogItem{
		{Id: "first", Title: "Tap Installation"},
		{Id: "second", Title: "Tap Installation"},
		{Id: "third", Title: "Tap Installation"},
	}

	scored := Score("tap installation", catalog)
	require.Len(t, scored, 3)
	assert.Equal(t, "first", scored[0].Item.Id)
	assert.Equal(t, "second", scored[1].Item.Id)
	assert.Equal(t, "third", scored[2].Item.Id)
}

func TestClassifyIntent(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ClassifyIntent("cheapest AC service"))
	assert.Equal(t, SortPriceAsc, ClassifyIntent("something low price please"))
	assert.Equal(t, SortPriceDesc, ClassifyIntent("most premium cleaning"))
	assert.Equal(t, SortPriceDesc, ClassifyIntent("highest rated painter"))
	assert.Equal(t, SortNone, ClassifyIntent("tap installation"))
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 3300, ParsePrice("Rs  3300"))
	assert.Equal(t, 3300, ParsePrice("Rs 3,300"))
	assert.Equal(t, 0, ParsePrice("Rs 0"))
	assert.Equal(t, 0, ParsePrice(""))
	assert.Equal(t, 0, ParsePrice("free"))
}

func TestSortByPrice(t *testing.T) {
	items := []entity.CatalogItem{
		{Id: "mid", Price: "Rs 5100"},
		{Id: "low", Price: "Rs 1000"},
		{Id: "high", Price: "Rs 12000"},
	}

	SortByPrice(items, SortPriceAsc)
	assert.Equal(t, []string{"low", "mid", "high"}, []string{items[0].Id, items[1].Id, items[2].Id})

	SortByPrice(items, SortPriceDesc)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{items[0].Id, items[1].Id, items[2].Id})
}

func TestAdviceCategoryPriority(t *testing.T) {
	assert.Equal(t, "ac", AdviceCategory("ac repair"))
	assert.Equal(t, "ac", AdviceCategory("room cooling"))
	assert.Equal(t, "plumbing", AdviceCategory("pipe leak"))
	assert.Equal(t, "electrical", AdviceCategory("light fitting"))
	assert.Equal(t, "cleaning", AdviceCategory("sofa wash"))
	assert.Equal(t, "painting", AdviceCategory("wall color"))
	assert.Equal(t, "default", AdviceCategory("gardening"))

	// "ac" wins over later categories when both appear.
	assert.Equal(t, "ac", AdviceCategory("ac pipe leak"))
}
