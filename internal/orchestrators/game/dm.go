package game

import (
	"context"
	"fmt"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/rules"
)

// defaultNarration fills the silence when no DM agent answers
const defaultNarration = "조용한 긴장감이 감돈다. 무언가가 움직이는 소리가 들린다..."

// promptDM drives the out-of-combat loop: a connected DM agent gets a
// prompt under a deadline; otherwise stock narration plays and the
// engine checks whether combat should open.
func (e *Engine) promptDM(ctx context.Context) {
	if e.session == nil || e.session.Finished() || e.combat.Active {
		return
	}

	if e.dmAgentID != "" && e.gateway.Connected(e.dmAgentID) {
		promptID := e.ids.Generate()
		e.currentPromptID = promptID
		msg := &arena.DMPrompt{
			PromptID: promptID,
			Deadline: e.clk.Now().Add(e.timing.DMTimeout),
			Scene:    e.scene(),
			Skills:   e.partySkills(),
			View:     e.turnView(nil),
		}
		if err := e.gateway.SendDMPrompt(ctx, e.dmAgentID, msg); err == nil {
			e.sched.Schedule(timerDMPrompt, e.timing.DMTimeout, func() {
				e.do(func() { e.onDMTimeout(context.Background(), promptID) })
			})
			return
		}
		e.log.Error("failed to send dm_prompt", "agent_id", e.dmAgentID)
		e.currentPromptID = ""
	}

	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{From: "DM", Text: defaultNarration})
	e.startCombatOrExplore(ctx)
}

// onDMTimeout narrates for a DM that missed its deadline
func (e *Engine) onDMTimeout(ctx context.Context, promptID string) {
	if e.currentPromptID != promptID {
		return
	}
	e.currentPromptID = ""
	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{From: "DM", Text: defaultNarration})
	e.startCombatOrExplore(ctx)
}

// startCombatOrExplore opens combat when hostiles are close enough,
// otherwise schedules the next exploration beat.
func (e *Engine) startCombatOrExplore(ctx context.Context) {
	if e.session == nil || e.session.Finished() || e.combat.Active {
		return
	}
	if e.enemiesInProximity() {
		e.startCombat(ctx)
		return
	}
	e.sched.Schedule(timerExplore, e.timing.ExplorationInterval, func() {
		e.do(func() { e.promptDM(context.Background()) })
	})
}

// enemiesInProximity reports whether any living enemy is inside ranged
// reach of the party.
func (e *Engine) enemiesInProximity() bool {
	for _, enemy := range e.livingEnemies() {
		for _, p := range e.livingParty() {
			if rules.Manhattan(enemy.Pos, p.Pos) <= rules.RangedRange {
				return true
			}
		}
	}
	return false
}

func (e *Engine) scene() string {
	if n := len(e.livingEnemies()); n > 0 {
		return fmt.Sprintf("적 %d기가 시야에 있다.", n)
	}
	return "주변은 조용하다."
}

// partySkills is the union of the party's trained skills
func (e *Engine) partySkills() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range e.party() {
		if v := t.Player(); v != nil {
			for _, skill := range rules.ClassSkills(v.Class) {
				if !seen[skill] {
					seen[skill] = true
					out = append(out, skill)
				}
			}
		}
	}
	return out
}

// HandleDMReplyInput is the DM agent's answer to dm_prompt
type HandleDMReplyInput struct {
	Reply *arena.DMReply
}

// HandleDMReply applies the DM's intents in order. Replies to stale
// prompts are rejected, so a slow DM cannot speak over a newer beat.
func (e *Engine) HandleDMReply(ctx context.Context, input *HandleDMReplyInput) error {
	if input == nil || input.Reply == nil {
		return errors.InvalidArgument("reply cannot be nil")
	}
	if input.Reply.PromptID == "" {
		return errors.InvalidArgument("prompt ID cannot be empty")
	}

	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		if input.Reply.PromptID != e.currentPromptID {
			opErr = errors.FailedPreconditionf("prompt %s is not current", input.Reply.PromptID)
			return
		}
		e.sched.Cancel(timerDMPrompt)
		e.currentPromptID = ""

		for _, intent := range input.Reply.Intents {
			e.applyDMIntent(ctx, intent)
		}
		e.startCombatOrExplore(ctx)
	})
	return opErr
}

// ApplyDMIntent applies a single dungeon-master intent outside the
// prompt cycle. Demo drivers script sessions through it.
func (e *Engine) ApplyDMIntent(ctx context.Context, intent arena.DMIntent) error {
	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		e.applyDMIntent(ctx, intent)
	})
	return opErr
}

// Say publishes an utterance through the content filter
func (e *Engine) Say(ctx context.Context, from, text string) error {
	if from == "" || text == "" {
		return errors.InvalidArgument("from and text cannot be empty")
	}
	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		e.emitSpeech(ctx, from, text)
	})
	return opErr
}

func (e *Engine) applyDMIntent(ctx context.Context, intent arena.DMIntent) {
	switch intent.Type {
	case arena.DMNarrate:
		if intent.Text != "" {
			e.emitSpeech(ctx, "DM", intent.Text)
		}

	case arena.DMSetDC:
		e.pendingSkill = intent.Skill
		e.pendingDC = rules.CoerceDC(intent.DC)

	case arena.DMSpawnEnemy:
		token := e.spawnEnemy(ctx, intent.Archetype, intent.At)
		if token == nil {
			return
		}
		e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
			From: "SYSTEM",
			Text: fmt.Sprintf("%s이(가) 나타났다!", token.Name),
		})
		e.emitMapState(ctx)

	case arena.DMRequestCombatStart:
		if !e.combat.Active && len(e.livingEnemies()) > 0 {
			e.startCombat(ctx)
		}

	case arena.DMRequestCombatEnd:
		// The DM may only call an encounter when nothing hostile is left
		if e.combat.Active && len(e.livingEnemies()) == 0 {
			reason := intent.Text
			if reason == "" {
				reason = "전투 종료"
			}
			e.endCombat(ctx, true, reason)
		}

	case arena.DMNPCAction:
		if e.combat.Active || intent.Action == nil {
			return
		}
		token := e.tokenByID(intent.ActorID)
		if token == nil || token.Variant.Kind() != arena.KindNPC {
			return
		}
		e.resolveIntent(ctx, token, *intent.Action)
	}
}
