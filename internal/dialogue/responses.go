package dialogue

import "math/rand"

// Canned response pools. Each rejection or redirect picks randomly from a
// small fixed set to avoid sounding repetitive.
var (
	shortInputResponses = []string{
		"That was a bit short for me — could you say a little more?",
		"I need a few more words to work with. What did you spend?",
		"Hmm, not much to go on there. Try something like 'RM10 for lunch'.",
	}

	gibberishResponses = []string{
		"That looks like keyboard noise to me. Tell me about an expense instead?",
		"I couldn't make sense of that. Try 'RM15 for nasi lemak'.",
		"Not sure what that means! I'm best with things like 'spent RM20 on petrol'.",
	}

	profanityResponses = []string{
		"I hear you — money stuff can be stressful. Want to log an expense or check your budget?",
		"Rough day? I'm here to help with the money side at least. What did you spend?",
		"Let's take a breath. Tell me an expense and I'll handle the rest.",
	}

	frustrationResponses = []string{
		"Sorry this feels clunky. Try plain phrases like 'RM10 for lunch' — I'm reliable with those.",
		"I want to get this right. Could you rephrase it simply, like 'spent RM30 on groceries'?",
		"Thanks for bearing with me. Short and simple works best: 'RM25 for petrol'.",
	}

	firstCancelResponses = []string{
		"No problem, I've cancelled that. What would you like to do instead?",
		"Okay, scrapped it. We can pick it up again anytime.",
		"Cancelled! Just say the word when you want to try again.",
	}

	repeatCancelResponses = []string{
		"Cancelled again — no rush at all. I'll be here when you're ready.",
		"That's okay, we've stopped. Take your time; nothing was saved.",
		"All cleared. If the flow feels confusing, try telling me in one line what you want.",
	}

	clarificationResponses = []string{
		"I'm having a little trouble understanding. Could you put it another way?",
		"Sorry, I didn't quite get that. Try 'RM10 for lunch' or 'set budget'.",
	}

	storageFailureResponses = []string{
		"Sorry, I couldn't save that just now. Mind trying again in a moment?",
		"Something went wrong on my side while saving. Please try once more.",
	}
)

// pick selects one response from a pool.
func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}
