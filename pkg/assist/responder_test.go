package assist

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-client/internal/constant"
	"marketplace-client/internal/entity"
)

func newTestResponder(catalog []entity.CatalogItem) *Responder {
	// Seeded source keeps advice selection reproducible.
	return NewResponder(catalog, NewAdvisor(rand.New(rand.NewSource(1))))
}

func TestRespondCheapestACScenario(t *testing.T) {
	r := newTestResponder([]entity.CatalogItem{
		{Id: "2", Title: "AC Installation", Price: "Rs 5100"},
		{Id: "1", Title: "AC General Service", Price: "Rs 3300"},
	})

	msg := r.Respond("cheapest ac service")

	require.Equal(t, entity.ChatMessageTypeResult, msg.Type)
	require.Len(t, msg.Results, 2)
	assert.Equal(t, "AC General Service", msg.Results[0].Title, "ascending price puts 3300 first")
	assert.Equal(t, "AC Installation", msg.Results[1].Title)
	assert.Contains(t, msg.Text, "budget-friendly")
	assert.Equal(t, entity.ChatSenderBot, msg.Sender)
}

func TestRespondPremiumFraming(t *testing.T) {
	r := newTestResponder([]entity.CatalogItem{
		{Id: "1", Title: "Deep House Cleaning", Price: "Rs 12000"},
		{Id: "2", Title: "Sofa Cleaning", Price: "Rs 2500"},
	})

	msg := r.Respond("most expensive cleaning")
	require.Equal(t, entity.ChatMessageTypeResult, msg.Type)
	assert.Equal(t, "Deep House Cleaning", msg.Results[0].Title)
	assert.Contains(t, msg.Text, "premium")
}

func TestRespondCapsDisplayAtThree(t *testing.T) {
	var catalog []entity.CatalogItem
	for i := 0; i < 6; i++ {
		catalog = append(catalog, entity.CatalogItem{Id: string(rune('a' + i)), Title: "Tap Installation", Price: "Rs 900"})
	}

	msg := newTestResponder(catalog).Respond("tap installation")
	assert.Len(t, msg.Results, 3)
	assert.Contains(t, msg.Text, "top 3 picks")
}

func TestRespondEmptyResultStillAdvises(t *testing.T) {
	msg := newTestResponder(testCatalog()).Respond("quantum zebra yoga")

	assert.Equal(t, entity.ChatMessageTypeText, msg.Type, "no results is a text message, not an empty result")
	assert.Empty(t, msg.Results)
	assert.NotEmpty(t, msg.Text)
	assert.Contains(t, msg.Text, "couldn't find")

	// The advice comes from the default category.
	var found bool
	for _, advice := range constant.AdviceKB["default"] {
		if strings.Contains(msg.Text, strings.ToLower(advice)) {
			found = true
		}
	}
	assert.True(t, found, "reply must embed a default-category advice line")
}

func TestRespondDeterministicRanking(t *testing.T) {
	// Two responders with different seeds must produce the same items in
	// the same order; only the advice sentence may differ.
	catalog := testCatalog()
	a := NewResponder(catalog, NewAdvisor(rand.New(rand.NewSource(7)))).Respond("ac service")
	b := NewResponder(catalog, NewAdvisor(rand.New(rand.NewSource(99)))).Respond("ac service")

	require.Equal(t, len(a.Results), len(b.Results))
	for i := range a.Results {
		assert.Equal(t, a.Results[i].Id, b.Results[i].Id)
	}
}

func TestComposeReplyTipFraming(t *testing.T) {
	items := []entity.CatalogItem{{Id: "1", Title: "AC Repairing"}}
	text := ComposeReply("ac repair", items, SortNone, "Check the drain pipe first.")

	assert.Contains(t, text, "highly-rated")
	assert.Contains(t, text, "💡 **Tip:** Check the drain pipe first.")
	assert.Contains(t, text, "top 1 picks")
}
