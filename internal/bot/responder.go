package bot

import (
	"math/rand"
	"strings"

	"github.com/pscheid92/moodlens/internal/domain"
)

var positiveResponses = []string{
	"That's wonderful to hear! Is there anything else I can help you with?",
	"I'm glad things are going well! How can I assist you further?",
	"Great to hear that! What else would you like to discuss?",
	"That sounds positive! Feel free to share more.",
	"I appreciate your positive feedback! How may I continue to help?",
}

var negativeResponses = []string{
	"I'm sorry to hear that. Let me see how I can help address your concern.",
	"I understand your frustration. I'll do my best to assist you.",
	"I apologize for any inconvenience. How can I make things better?",
	"I hear your concern and want to help resolve this issue.",
	"I'm sorry you're experiencing this. Let's work together to find a solution.",
}

var neutralResponses = []string{
	"I understand. How can I assist you further?",
	"Thank you for sharing. What else would you like to know?",
	"I see. Is there anything specific you'd like help with?",
	"Got it. Feel free to ask me anything.",
	"Understood. How may I help you today?",
}

// keywordResponses override sentiment-based selection when the user's
// message contains the keyword. Checked in a fixed order so responses stay
// deterministic for a given rand source.
var keywordResponses = []struct {
	keyword string
	replies []string
}{
	{"hello", []string{"Hello! Welcome! How can I assist you today?", "Hi there! How may I help you?"}},
	{"goodbye", []string{"Goodbye! It was nice talking to you.", "Bye! Have a great day!"}},
	{"bye", []string{"Goodbye! Thank you for chatting with me.", "Take care! Feel free to return anytime."}},
	{"thanks", []string{"You're welcome! Let me know if you need anything else.", "Glad I could help!"}},
	{"thank", []string{"You're welcome! Is there anything else I can help with?", "Happy to help! Anything else?"}},
	{"help", []string{"I'm here to help! What do you need assistance with?", "Of course! What would you like help with?"}},
	{"problem", []string{"I'm sorry to hear about the problem. Can you tell me more?", "Let's solve this together. What's happening?"}},
	{"issue", []string{"I understand there's an issue. Please provide more details.", "I'll help you resolve this issue. What's going on?"}},
	{"complaint", []string{"I'm sorry you have a complaint. I'll make sure it's addressed.", "Your feedback is important. Please tell me more."}},
	{"disappointed", []string{"I'm truly sorry to hear you're disappointed. How can I make it right?", "I apologize for the disappointment. Let me help."}},
	{"frustrated", []string{"I understand your frustration. Let me help resolve this.", "I'm sorry for the frustration. What can I do to help?"}},
	{"angry", []string{"I apologize for causing any frustration. Let's work this out.", "I'm sorry you're upset. How can I make things better?"}},
}

// Responder selects templated replies. The rand source is injected so tests
// can pin selection; a nil source falls back to the global one.
type Responder struct {
	rng *rand.Rand
}

// NewResponder creates a responder drawing from rng.
func NewResponder(rng *rand.Rand) *Responder {
	return &Responder{rng: rng}
}

// Respond picks a reply for the user's message. Keyword overrides win over
// the label-based template pools.
func (r *Responder) Respond(userInput string, label domain.Label) string {
	lower := strings.ToLower(userInput)
	for _, kr := range keywordResponses {
		if strings.Contains(lower, kr.keyword) {
			return r.pick(kr.replies)
		}
	}

	switch label {
	case domain.LabelPositive:
		return r.pick(positiveResponses)
	case domain.LabelNegative:
		return r.pick(negativeResponses)
	default:
		return r.pick(neutralResponses)
	}
}

func (r *Responder) pick(replies []string) string {
	if r.rng == nil {
		return replies[rand.Intn(len(replies))]
	}
	return replies[r.rng.Intn(len(replies))]
}
