// Package agent implements the conversation engine: per-user sessions that
// classify prompts into business intents, extract and accumulate record
// fields across turns, ask for what is still missing and finalize records
// against the entity store.
package agent

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/fielddesk/fielddesk-agent/internal/app/tools"
	"github.com/fielddesk/fielddesk-agent/internal/domain"
	"github.com/fielddesk/fielddesk-agent/internal/observability"
)

// Confidence thresholds for accepting classification verdicts.
const (
	// confSwitchIntent gates abandoning an in-progress record for a new
	// intent the user pivoted to.
	confSwitchIntent = 0.6
	// confMidFlowGet gates answering a retrieval question asked in the
	// middle of collecting record data.
	confMidFlowGet = 0.4
	// confRetryDetection gates one repeated classification attempt when
	// the first verdict came back unknown but not hopeless.
	confRetryDetection = 0.2
	// confClarify and below means the engine asks the user to rephrase.
	confClarify = 0.1
)

// historyLimit bounds the per-session turn log handed to extraction calls.
const historyLimit = 20

// resetPhrases clear the session when a prompt consists of one of them.
var resetPhrases = map[string]bool{
	"reset":          true,
	"start over":     true,
	"start again":    true,
	"restart":        true,
	"cancel":         true,
	"nevermind":      true,
	"never mind":     true,
	"forget it":      true,
	"recommencer":    true,
	"on recommence":  true,
	"annule":         true,
	"annuler":        true,
	"laisse tomber":  true,
	"c'est annulé":   true,
}

func isResetPhrase(prompt string) bool {
	p := strings.ToLower(strings.TrimSpace(prompt))
	p = strings.TrimRight(p, ".!? ")
	return resetPhrases[p]
}

// Engine orchestrates conversations. One instance serves all users;
// per-user state lives in the session store.
type Engine struct {
	sessions domain.SessionStore
	registry *tools.Registry

	classify *classifier
	extract  *extractor
	respond  *responder

	defaultLanguage string
}

// New builds an engine. A nil rng gets a time-seeded one; tests inject a
// fixed seed to pin chit-chat replies.
func New(llm domain.CompletionClient, sessions domain.SessionStore, entities domain.EntityStore, defaultLanguage string, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &Engine{
		sessions:        sessions,
		registry:        tools.NewRegistry(entities),
		classify:        &classifier{llm: llm},
		extract:         &extractor{llm: llm},
		respond:         &responder{rng: rng},
		defaultLanguage: defaultLanguage,
	}
}

// Status is the snapshot GetStatus returns for one user.
type Status struct {
	Active              bool                     `json:"active"`
	State               domain.ConversationState `json:"state,omitempty"`
	Intent              domain.Intent            `json:"intent,omitempty"`
	Operation           domain.Operation         `json:"operation,omitempty"`
	MissingFields       []string                 `json:"missing_fields,omitempty"`
	MissingDataAttempts int                      `json:"missing_data_attempts,omitempty"`
	Data                domain.Record            `json:"data,omitempty"`
}

// GetStatus reports the user's current session, if any.
func (e *Engine) GetStatus(userID domain.UserID) Status {
	sess, ok := e.sessions.Get(userID)
	if !ok {
		return Status{Active: false}
	}
	return Status{
		Active:              true,
		State:               sess.State,
		Intent:              sess.Intent,
		Operation:           sess.Operation,
		MissingFields:       missingFields(sess.Intent, sess.Data),
		MissingDataAttempts: sess.MissingDataAttempts,
		Data:                sess.Data.Clone(),
	}
}

// Reset drops the user's session. Resetting an absent session succeeds.
func (e *Engine) Reset(userID domain.UserID, language string) (Response, error) {
	if err := e.sessions.Reset(userID); err != nil {
		return e.respond.processError(e.language(language)), err
	}
	return e.respond.reset(e.language(language)), nil
}

func (e *Engine) language(language string) string {
	if language == "" {
		return e.defaultLanguage
	}
	return language
}

// ProcessRequest runs one conversation turn for a user.
func (e *Engine) ProcessRequest(ctx context.Context, userID domain.UserID, prompt, language string) Response {
	lang := e.language(language)
	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	if isResetPhrase(prompt) {
		resp, err := e.Reset(userID, lang)
		if err != nil {
			log.Error("reset failed", "error", err)
		}
		return resp
	}

	sess, existing := e.sessions.Get(userID)
	if !existing {
		now := time.Now().UTC()
		sess = &domain.Session{
			UserID:    userID,
			State:     domain.StateIntentDetection,
			Intent:    domain.IntentUnknown,
			Operation: domain.OperationUnknown,
			Data:      domain.Record{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	sess.History = appendTurn(sess.History, domain.RoleUser, prompt)

	var resp Response
	switch sess.State {
	case domain.StateDataExtraction, domain.StateDataCompletion:
		resp = e.continueFlow(ctx, sess, prompt, lang, log)
	default:
		resp = e.startFlow(ctx, sess, prompt, lang, log)
	}

	log.Info("turn processed",
		"type", resp.Type, "intent", resp.Intent, "state", resp.State)
	return resp
}

// startFlow handles a prompt with no record in progress: classify, then
// either answer directly (chit-chat, clarification) or begin extraction.
func (e *Engine) startFlow(ctx context.Context, sess *domain.Session, prompt, lang string, log *slog.Logger) Response {
	result := e.classify.Classify(ctx, prompt)

	// One retry when the verdict is unknown but carries some signal.
	if result.Intent == domain.IntentUnknown && result.Confidence >= confRetryDetection {
		result = e.classify.Classify(ctx, prompt)
	}

	if result.Intent == domain.IntentChitChat {
		resp := e.respond.casual(lang)
		e.saveIfExisting(sess, resp.Message, log)
		return resp
	}

	if result.Intent == domain.IntentUnknown || result.Confidence <= confClarify {
		// The session stays in intent detection so this turn's history
		// feeds the next extraction.
		resp := e.respond.clarification(lang)
		e.save(sess, resp.Message, log)
		return resp
	}

	sess.Intent = result.Intent
	sess.Operation = result.Operation
	sess.Confidence = result.Confidence
	sess.State = domain.StateDataExtraction
	return e.advance(ctx, sess, prompt, lang, log)
}

// continueFlow handles a prompt while a record is being collected. The
// current flow survives unless the user clearly pivoted: a confident
// different intent abandons the record and restarts, a confident retrieval
// question about the same kind is answered on the side, chit-chat gets a
// reply with the flow intact. The intent switch is checked first; a pivot
// always wins over a side answer.
func (e *Engine) continueFlow(ctx context.Context, sess *domain.Session, prompt, lang string, log *slog.Logger) Response {
	if isChitChat(prompt) {
		resp := e.respond.casual(lang)
		e.save(sess, resp.Message, log)
		return resp
	}

	result := e.classify.Classify(ctx, prompt)
	if result.Intent != domain.IntentUnknown {
		switch {
		case result.Intent != sess.Intent && result.Confidence >= confSwitchIntent:
			sess.Intent = result.Intent
			sess.Operation = result.Operation
			sess.Confidence = result.Confidence
			sess.Data = domain.Record{}
			sess.MissingDataAttempts = 0
			sess.State = domain.StateDataExtraction
		case result.Intent == sess.Intent && result.Operation == domain.OperationGet &&
			sess.Operation != domain.OperationGet && result.Confidence >= confMidFlowGet:
			return e.sideQuery(ctx, sess, result, prompt, lang, log)
		}
	}
	return e.advance(ctx, sess, prompt, lang, log)
}

// sideQuery answers a retrieval question without touching the in-progress
// record; the session is saved as-is so the flow resumes on the next turn.
func (e *Engine) sideQuery(ctx context.Context, sess *domain.Session, result classification, prompt, lang string, log *slog.Logger) Response {
	tool, ok := e.registry.ForIntent(result.Intent)
	if !ok {
		return e.advance(ctx, sess, prompt, lang, log)
	}

	query := &domain.Session{
		UserID:     sess.UserID,
		Intent:     result.Intent,
		Operation:  domain.OperationGet,
		Confidence: result.Confidence,
	}
	resp, err := e.runGet(ctx, tool, query, e.extract.Extract(ctx, result.Intent, domain.OperationGet, prompt, lang, nil), lang)
	if err != nil {
		log.Error("side retrieval failed", "intent", result.Intent, "error", err)
		return e.respond.processError(lang)
	}
	e.save(sess, resp.Message, log)
	return resp
}

// advance runs extraction and resolution for the session's current intent.
func (e *Engine) advance(ctx context.Context, sess *domain.Session, prompt, lang string, log *slog.Logger) Response {
	raw := e.extract.Extract(ctx, sess.Intent, sess.Operation, prompt, lang, sess.History)
	sess.Data = Merge(sess.Data, raw)
	sess.UpdatedAt = time.Now().UTC()

	tool, hasTool := e.registry.ForIntent(sess.Intent)

	if sess.Operation == domain.OperationGet {
		if !hasTool {
			return e.respond.clarification(lang)
		}
		// An id-keyed lookup without the id asks for it instead of dumping
		// the whole list.
		if missing := missingGetFields(sess.Data); len(missing) > 0 && sess.MissingDataAttempts < maxMissingDataAttempts {
			sess.MissingDataAttempts++
			sess.State = domain.StateDataCompletion
			resp := e.respond.missingData(sess, missing, lang)
			e.save(sess, resp.Message, log)
			return resp
		}
		resp, err := e.runGet(ctx, tool, sess, sess.Data, lang)
		if err != nil {
			log.Error("retrieval failed", "intent", sess.Intent, "error", err)
			return e.respond.processError(lang)
		}
		e.complete(sess, log)
		return resp
	}

	missing := missingFields(sess.Intent, sess.Data)
	if len(missing) > 0 && sess.MissingDataAttempts < maxMissingDataAttempts {
		sess.MissingDataAttempts++
		sess.State = domain.StateDataCompletion
		resp := e.respond.missingData(sess, missing, lang)
		e.save(sess, resp.Message, log)
		return resp
	}
	if len(missing) > 0 {
		sess.Data = fillDefaults(sess.Intent, sess.Data)
	}

	// Creation finalizes by echoing the stamped record; persistence is the
	// caller's concern, not the engine's.
	sess.State = domain.StateResponseGeneration
	resp := e.respond.created(sess, finalizeRecord(sess.Intent, sess.Data, time.Now()), lang)
	e.complete(sess, log)
	return resp
}

// runGet answers a retrieval: by id when the record names one, the full
// list otherwise.
func (e *Engine) runGet(ctx context.Context, tool tools.Tool, sess *domain.Session, data domain.Record, lang string) (Response, error) {
	if id := data.GetString("id"); id != "" {
		rec, err := tool.Get(ctx, sess.UserID, id)
		if err != nil {
			return Response{}, err
		}
		return e.respond.retrieved(sess, []domain.Record{rec}, lang), nil
	}
	recs, err := tool.List(ctx, sess.UserID)
	if err != nil {
		return Response{}, err
	}
	return e.respond.retrieved(sess, recs, lang), nil
}

// complete drops the session after a finalized turn so the next prompt
// starts fresh.
func (e *Engine) complete(sess *domain.Session, log *slog.Logger) {
	if err := e.sessions.Delete(sess.UserID); err != nil {
		log.Warn("session cleanup failed", "error", err)
	}
}

func (e *Engine) save(sess *domain.Session, agentMessage string, log *slog.Logger) {
	sess.History = appendTurn(sess.History, domain.RoleAgent, agentMessage)
	sess.UpdatedAt = time.Now().UTC()
	if err := e.sessions.Put(sess); err != nil {
		log.Error("session save failed", "error", err)
	}
}

// saveIfExisting persists history for a session that was already underway;
// a brand-new session answered with chit-chat or a clarification leaves no
// state behind.
func (e *Engine) saveIfExisting(sess *domain.Session, agentMessage string, log *slog.Logger) {
	if _, ok := e.sessions.Get(sess.UserID); ok {
		e.save(sess, agentMessage, log)
	}
}

func appendTurn(history []domain.Turn, role domain.Role, content string) []domain.Turn {
	history = append(history, domain.Turn{Role: role, Content: content})
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	return history
}
