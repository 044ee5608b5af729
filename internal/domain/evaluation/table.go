package evaluation

import "github.com/evalix/ai-readiness/internal/domain/questions"

// Breakpoints for the canned evaluation texts. An average a selects the
// first bucket with a <= Breakpoints[i]; above the last breakpoint the
// final text applies, so Lookup is total over all reals.
var Breakpoints = []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5}

// 9 texts per category, ordered from weakest to strongest result.
var texts = map[string][9]string{
	questions.CategoryStrategy: {
		"AI does not appear in your strategy yet. Start by putting it on the management agenda.",
		"First conversations are happening, but nothing is written down. Capture them in a one-page direction paper.",
		"There are early strategic ideas. Turn them into a draft with goals and responsibilities.",
		"A strategy is forming. Anchor it with budget and a named owner to make it stick.",
		"Your strategic foundation is solid for parts of the business. Widen it beyond the pilot areas.",
		"Strategy and ownership are in place. Sharpen the use-case pipeline and measure progress.",
		"You steer AI strategically across the company. Focus on prioritisation and faster execution.",
		"Your AI strategy is mature and actively managed. Use it to move into new business models.",
		"Strategy-wise you are ahead of the market. Keep reviewing it so the lead does not erode.",
	},
	questions.CategoryApplication: {
		"AI is not used in daily work yet. A low-risk tool pilot is the easiest first step.",
		"A few individuals experiment on their own. Give them a sanctioned space and share what they learn.",
		"Occasional tool usage exists. Pick one recurring task and make AI the default for it.",
		"Some teams work with AI regularly. Document what works and spread it to neighbouring teams.",
		"AI is in real use. The next lever is integrating it into one core business process.",
		"A first process integration exists. Stabilise it and prepare the data for the next one.",
		"AI runs inside your core processes. Invest in data quality and monitoring to scale further.",
		"Multiple processes run on AI in production. Optimise for reliability and cost now.",
		"Application-wise you operate at the front of the field. Push towards automation end-to-end.",
	},
	questions.CategoryCulture: {
		"The organisation meets AI with fear or rejection. Start with transparent communication, not tools.",
		"Scepticism dominates. Small visible wins and open Q&A sessions lower the barrier.",
		"People are waiting to see. Involve them early in pilot selection to build ownership.",
		"Curiosity is there. Channel it with a first structured training offer.",
		"Openness is growing. Establish champions in each department to keep momentum.",
		"Training exists and is used. Tie it to roles so skills land where they are needed.",
		"Your culture actively supports AI. Reward experimentation and share failures openly.",
		"Employees drive adoption themselves. Give them room and governance that enables rather than blocks.",
		"Culturally you are an AI-first organisation. Protect that edge when you scale and hire.",
	},
}

// fallback palette when a category name is unknown, keeps Lookup total.
var genericTexts = [9]string{
	"You are at the very beginning. Start small and deliberately.",
	"First steps are visible. Keep the momentum with a concrete next experiment.",
	"A foundation is forming. Define owners and goals to build on it.",
	"You are making progress. Focus on one area and finish it properly.",
	"Solid midfield. Consistency will move you up from here.",
	"Above average. Systematise what currently relies on individuals.",
	"A strong result. Scaling is your next challenge.",
	"Very strong. Optimise and measure rather than add more.",
	"Top of the field. Defend the lead by continuing to invest.",
}

// Lookup maps a category and an average to its canned evaluation text.
// Total over all averages; higher averages yield strictly more positive text.
func Lookup(category string, average float64) string {
	palette, ok := texts[category]
	if !ok {
		palette = genericTexts
	}
	for i, bp := range Breakpoints {
		if average <= bp {
			return palette[i]
		}
	}
	return palette[len(palette)-1]
}
