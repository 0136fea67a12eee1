package constant

// Advice knowledge base for the local assistant fallback. Categories are
// matched by keyword priority in assist.AdviceCategory; each list holds
// exactly three entries and one is picked at random per reply.
var AdviceKB = map[string][]string{
	"ac": {
		"For ACs, regular servicing every 6 months can reduce electricity bills by up to 15%.",
		"If your AC is leaking water, it usually means the drain pipe is clogged.",
		"Gas refilling is only needed if there's a leak; don't let technicians oversell it!",
	},
	"plumbing": {
		"For new fittings, ensure they use non-corrosive materials.",
		"Leaky taps can waste up to 20 liters of water a day, so fixing them is a great saving.",
		"If you have low water pressure, it might just be sediment in the aerator.",
	},
	"electrical": {
		"Always check for certified electricians for safety.",
		"LED lights can save you significant money on your monthly bill.",
		"If your breaker trips frequently, you might be overloading a single circuit.",
	},
	"cleaning": {
		"Deep cleaning is recommended before major festivals or after renovations.",
		"Ensure they use eco-friendly chemicals if you have pets or kids.",
		"Sofa cleaning usually takes 4-6 hours to dry completely.",
	},
	"painting": {
		"Lighter colors make small rooms look bigger.",
		"Make sure they scrape off the old paint completely before applying the new coat.",
		"Emulsion paint is easier to clean than distemper.",
	},
	"default": {
		"I recommend checking the reviews and details before booking.",
		"Comparing a few options is always a good idea to get the best deal.",
		"Let me know if you need help comparing prices!",
	},
}

// AssistantPromptTemplate frames the remote completion call. Placeholders:
// user query, catalog context block.
const AssistantPromptTemplate = `You are a helpful assistant for a Home Services Marketplace app.

USER QUESTION: "%s"

Here is the relevant data available in our catalog (Context):
%s

INSTRUCTIONS:
1. Answer the user's question simply and helpfully.
2. If you recommend specific services from the list, mention them by name and price.
3. Do not mention "ID" or internal database fields.
4. If no specific service fits, give general advice but mention we might not have it.
5. Keep it conversational and friendly.`
