// README: Chat-turn orchestration: session lookup, intent extraction, clarification short-circuit, routing.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"wayfarer/internal/ai"
	"wayfarer/internal/logger"
	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/modules/routing"
	"wayfarer/internal/modules/session"
)

const (
	IntentError = "Error"

	msgNotInitialized = "I apologize, but the AI system is not initialized. Please check the LLM provider configuration."
	msgTurnFailed     = "I encountered an error. Please try again."
	msgProcessed      = "I processed your request."
)

// ChatReply is the result of one chat turn.
type ChatReply struct {
	SessionID string          `json:"session_id"`
	Reply     string          `json:"reply"`
	Intent    string          `json:"intent"`
	Slots     map[string]any  `json:"slots"`
	Flights   []flight.Flight `json:"flights,omitempty"`
	Hotels    []hotel.Hotel   `json:"hotels,omitempty"`
	Booking   any             `json:"booking,omitempty"`
}

type Health struct {
	LLMEnabled     bool   `json:"llm_enabled"`
	Provider       string `json:"llm_provider,omitempty"`
	ActiveSessions int    `json:"active_sessions"`
}

type Options struct {
	// HistoryTurns bounds the history passed to the extractor.
	HistoryTurns int
	// ExtractTimeout bounds a single extraction call. Zero means no deadline.
	ExtractTimeout time.Duration
}

// Assistant orchestrates the session store, the extractor and the router.
type Assistant struct {
	sessions  *session.Store
	extractor ai.Extractor
	router    *routing.Router
	opts      Options
	now       func() time.Time
}

// NewAssistant wires the chat pipeline. extractor may be nil when no LLM is configured.
func NewAssistant(sessions *session.Store, extractor ai.Extractor, router *routing.Router, opts Options) *Assistant {
	if opts.HistoryTurns <= 0 {
		opts.HistoryTurns = 10
	}
	return &Assistant{
		sessions:  sessions,
		extractor: extractor,
		router:    router,
		opts:      opts,
		now:       time.Now,
	}
}

// Chat processes one user utterance. It never returns an error: every failure becomes
// a normal reply.
func (a *Assistant) Chat(ctx context.Context, sessionID, text string) (reply ChatReply) {
	log := logger.Logger.WithField("session_id", sessionID)
	reply = ChatReply{SessionID: sessionID}

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("chat turn failed")
			reply = ChatReply{SessionID: sessionID, Reply: msgTurnFailed, Intent: IntentError, Slots: map[string]any{}}
		}
	}()

	sess := a.sessions.GetOrCreate(sessionID)

	if a.extractor == nil {
		reply.Reply = msgNotInitialized
		reply.Intent = IntentError
		reply.Slots = map[string]any{}
		return reply
	}

	ext := a.extract(ctx, text, sess, log)

	intent := routing.ParseIntent(ext.Intent)
	previous := sess.LastIntent()
	sess.SetLastIntent(string(intent))
	sess.AddMessage(session.RoleUser, text)

	log.WithFields(logrus.Fields{
		"intent":          intent,
		"previous_intent": previous,
		"has_reply":       ext.UserReply != nil,
	}).Info("intent extracted")

	if ext.UserReply != nil {
		sess.MergeSlots(ext.Slots)
		sess.AddMessage(session.RoleAssistant, *ext.UserReply)
		reply.Reply = *ext.UserReply
		reply.Intent = string(intent)
		reply.Slots = sess.Slots().NonNull()
		return reply
	}

	// Route merges this turn's slots; handlers that act irreversibly read them directly.
	res := a.router.Route(ctx, string(intent), ext.Slots, sess)
	msg := res.Message
	if msg == "" {
		msg = msgProcessed
	}
	sess.AddMessage(session.RoleAssistant, msg)

	reply.Reply = msg
	reply.Intent = string(res.Intent)
	reply.Slots = sess.Slots().NonNull()
	reply.Flights = res.Flights
	reply.Hotels = res.Hotels
	reply.Booking = res.Booking
	return reply
}

func (a *Assistant) extract(ctx context.Context, text string, sess *session.Session, log *logrus.Entry) *ai.Extraction {
	if a.opts.ExtractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.ExtractTimeout)
		defer cancel()
	}

	history := sess.History(a.opts.HistoryTurns)
	turns := make([]ai.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ai.Turn{Role: string(m.Role), Content: m.Content})
	}

	ext, err := a.extractor.Extract(ctx, text, ai.Context{
		SessionID: sess.ID(),
		History:   turns,
		Slots:     sess.Slots().NonNull(),
		Now:       a.now(),
	})
	if err != nil || ext == nil {
		log.WithError(err).WithField("provider", a.extractor.Name()).Warn("intent extraction failed")
		return ai.FallbackExtraction()
	}
	return ext
}

func (a *Assistant) Health() Health {
	h := Health{LLMEnabled: a.extractor != nil, ActiveSessions: a.sessions.Count()}
	if a.extractor != nil {
		h.Provider = a.extractor.Name()
	}
	return h
}

// Session returns a snapshot of the session, or session.ErrNotFound.
func (a *Assistant) Session(id string) (session.Snapshot, error) {
	sess, err := a.sessions.Get(id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// ResetSession clears the slot table and keeps the conversation history.
func (a *Assistant) ResetSession(id string) error {
	sess, err := a.sessions.Get(id)
	if err != nil {
		return err
	}
	sess.ClearSlots()
	logger.Logger.WithField("session_id", id).Info("session slots cleared")
	return nil
}

func (a *Assistant) DeleteSession(id string) error {
	if err := a.sessions.Delete(id); err != nil {
		return err
	}
	logger.Logger.WithField("session_id", id).Info("session deleted")
	return nil
}
