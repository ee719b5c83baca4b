// Package bot implements the rule-based conversational agent.
//
// The Responder picks templated replies from the classification of the
// user's message, with keyword overrides for common intents. The Bot ties
// scoring, response selection and history recording together for one
// conversation session. Neither touches the scoring internals; they consume
// only the label, as collaborators of the sentiment core.
package bot
