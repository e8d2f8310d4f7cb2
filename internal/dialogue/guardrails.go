package dialogue

import "strings"

// gibberishTokens are known test/noise inputs rejected outright.
var gibberishTokens = map[string]struct{}{
	"asdf": {}, "asdfgh": {}, "qwerty": {}, "qwertyuiop": {}, "zxcv": {},
	"test": {}, "testing": {}, "testing123": {}, "aaa": {}, "aaaa": {},
	"hjkl": {}, "lorem ipsum": {},
}

// profanityWords trigger an empathetic redirect rather than an error.
var profanityWords = []string{
	"damn", "shit", "fuck", "bloody hell", "wtf", "bodoh", "sial",
}

// frustrationWords trigger a supportive redirect.
var frustrationWords = []string{
	"useless", "stupid app", "not working", "doesn't work", "annoying",
	"frustrated", "frustrating", "hate this", "so bad",
}

// checkGuardrails applies the input-quality checks. It reports the canned
// redirect and true when the turn is fully handled.
func checkGuardrails(text string) (string, bool) {
	if len(text) <= 2 {
		return pick(shortInputResponses), true
	}
	if _, ok := gibberishTokens[text]; ok {
		return pick(gibberishResponses), true
	}
	for _, w := range profanityWords {
		if strings.Contains(text, w) {
			return pick(profanityResponses), true
		}
	}
	for _, w := range frustrationWords {
		if strings.Contains(text, w) {
			return pick(frustrationResponses), true
		}
	}
	return "", false
}

// cancelPhrases end the active wizard from any stage.
var cancelPhrases = []string{
	"cancel", "stop", "never mind", "nevermind", "forget it", "quit", "exit",
	"i'm confused", "im confused", "confused",
}

// isCancel reports whether the input is a cancellation or confusion phrase.
func isCancel(text string) bool {
	for _, phrase := range cancelPhrases {
		if text == phrase || strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// cancelFlow clears the active flow and returns an acknowledgement whose tone
// escalates with the session's cancel count.
func cancelFlow(session *SessionContext) string {
	session.ClearFlow()
	session.CancelCount++
	if session.CancelCount <= 1 {
		return pick(firstCancelResponses)
	}
	return pick(repeatCancelResponses)
}

// isYes and isNo interpret confirmation answers strictly enough for the
// yes/no stages; anything else re-prompts.
func isYes(text string) bool {
	switch text {
	case "yes", "y", "yeah", "yep", "ya", "ok", "okay", "sure", "correct", "right":
		return true
	}
	return strings.HasPrefix(text, "yes ") || strings.HasPrefix(text, "yes,")
}

func isNo(text string) bool {
	switch text {
	case "no", "n", "nope", "nah", "wrong", "incorrect":
		return true
	}
	return strings.HasPrefix(text, "no ") || strings.HasPrefix(text, "no,")
}
