package game

import (
	"context"
	"sort"

	"github.com/arenaforge/arena-api/internal/ai"
	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/rules"
	"github.com/arenaforge/arena-api/internal/safety"
)

// startCombat rolls initiative for every living token and opens round
// one. Players roll d20+2, everything else d20+1; ties keep roll order.
func (e *Engine) startCombat(ctx context.Context) {
	if e.combat.Active {
		return
	}

	var order []arena.InitiativeEntry
	for _, t := range e.tokens {
		if !t.Alive() {
			continue
		}
		bonus := rules.InitiativeOtherBonus
		if t.IsPlayer() {
			bonus = rules.InitiativePlayerBonus
		}
		roll, err := e.roller.Roll(20)
		if err != nil {
			e.log.Error("initiative roll failed", "token_id", t.ID, "error", err)
			roll = 10
		}
		order = append(order, arena.InitiativeEntry{TokenID: t.ID, Roll: roll + bonus})
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Roll > order[j].Roll })

	e.combat = arena.CombatState{Active: true, Order: order, Round: 1}
	e.sched.Cancel(timerExplore)
	e.sched.Cancel(timerDMPrompt)

	e.emit(ctx, arena.EventCombatStarted, &arena.CombatStartedPayload{
		Order: order,
		Round: 1,
	})
	e.nextTurn(ctx)
}

// nextTurn is the heart of the scheduler. End conditions run before any
// turn is handed out, victory checked ahead of defeat, then the next
// living token in initiative order acts.
func (e *Engine) nextTurn(ctx context.Context) {
	if e.session == nil || e.session.Finished() || !e.combat.Active {
		return
	}

	if len(e.livingEnemies()) == 0 {
		e.endCombat(ctx, true, "모든 적 처치!")
		return
	}
	if len(e.livingAllies()) == 0 {
		e.endCombat(ctx, false, "파티 전멸")
		return
	}

	for range e.combat.Order {
		if t := e.tokenByID(e.combat.Current()); t != nil && t.Alive() {
			break
		}
		e.bumpTurnIndex()
	}

	token := e.tokenByID(e.combat.Current())
	if token == nil {
		return
	}

	e.decayStatuses(token)
	e.emit(ctx, arena.EventTurnChanged, &arena.TurnChangedPayload{
		TokenID: token.ID,
		Round:   e.combat.Round,
	})

	switch token.Variant.Kind() {
	case arena.KindPlayer:
		e.handlePlayerTurn(ctx, token)
	case arena.KindEnemy:
		e.resolveIntent(ctx, token, e.enemyAI.Decide(e.aiView(token)))
		e.advanceTurn(ctx)
	case arena.KindNPC:
		e.resolveIntent(ctx, token, e.npcAI.Decide(e.aiView(token)))
		e.advanceTurn(ctx)
	}
}

func (e *Engine) bumpTurnIndex() {
	e.combat.TurnIndex++
	if e.combat.TurnIndex >= len(e.combat.Order) {
		e.combat.TurnIndex = 0
		e.combat.Round++
	}
}

// advanceTurn moves initiative forward and schedules the next turn after
// the inter-turn delay.
func (e *Engine) advanceTurn(ctx context.Context) {
	if e.session == nil || e.session.Finished() || !e.combat.Active {
		return
	}
	e.bumpTurnIndex()
	e.sched.Schedule(timerInterTurn, e.timing.InterTurnDelay, func() {
		e.do(func() { e.nextTurn(context.Background()) })
	})
}

// endCombat closes the encounter and routes the outcome: roguelike runs
// take floor-clear or run-defeat, ending sessions expire, everything
// else goes back to the DM.
func (e *Engine) endCombat(ctx context.Context, victory bool, reason string) {
	e.combat.Reset()
	e.currentTurnID = ""
	e.sched.Cancel(timerInterTurn)

	e.emit(ctx, arena.EventCombatEnded, &arena.CombatEndedPayload{
		Victory: victory,
		Reason:  reason,
	})

	if victory {
		switch {
		case e.run != nil:
			e.run.OnFloorCleared()
		case e.session.State == arena.StateEnding:
			e.endSession(ctx, arena.EndTimeLimit)
		default:
			e.promptDM(ctx)
		}
		return
	}

	if e.run != nil {
		e.run.OnPartyDefeated()
		return
	}
	e.endSession(ctx, arena.EndPartyDefeated)
}

// handlePlayerTurn routes a player turn: a connected agent gets a
// your_turn prompt under a deadline, otherwise the configured decider
// (or a plain defend) acts immediately.
func (e *Engine) handlePlayerTurn(ctx context.Context, token *arena.Token) {
	v := token.Player()

	if v.AgentID != "" && e.gateway.Connected(v.AgentID) {
		turnID := e.ids.Generate()
		e.currentTurnID = turnID
		msg := &arena.YourTurn{
			TurnID:   turnID,
			TokenID:  token.ID,
			Deadline: e.clk.Now().Add(e.timing.PlayerTurnTimeout),
			View:     e.turnView(token),
		}
		if err := e.gateway.SendYourTurn(ctx, v.AgentID, msg); err != nil {
			e.log.Error("failed to send your_turn", "agent_id", v.AgentID, "error", err)
			e.currentTurnID = ""
			e.resolveIntent(ctx, token, arena.Intent{Type: arena.IntentDefend})
			e.advanceTurn(ctx)
			return
		}
		e.sched.Schedule(timerTurn+turnID, e.timing.PlayerTurnTimeout, func() {
			e.do(func() { e.onTurnTimeout(context.Background(), turnID) })
		})
		return
	}

	intent := arena.Intent{Type: arena.IntentDefend}
	if e.playerAI != nil {
		intent = e.playerAI.Decide(e.aiView(token))
	}
	e.resolveIntent(ctx, token, intent)
	e.advanceTurn(ctx)
}

// onTurnTimeout defends for an agent that missed its deadline. The guard
// against a stale turn ID makes a late-arriving action and its timeout
// commute: whichever lands second is a no-op.
func (e *Engine) onTurnTimeout(ctx context.Context, turnID string) {
	if e.currentTurnID != turnID || e.processedTurns[turnID] {
		return
	}
	e.processedTurns[turnID] = true
	e.currentTurnID = ""

	token := e.tokenByID(e.combat.Current())
	if token == nil {
		return
	}
	e.resolveIntent(ctx, token, arena.Intent{Type: arena.IntentDefend})
	e.advanceTurn(ctx)
}

// HandleTurnActionInput is an agent's reply to your_turn
type HandleTurnActionInput struct {
	AgentID string
	Action  *arena.TurnAction
}

// HandleTurnAction applies a player agent's declared action. Replies
// carrying a stale or already-processed turn ID are rejected, so resends
// after a timeout are harmless.
func (e *Engine) HandleTurnAction(ctx context.Context, input *HandleTurnActionInput) error {
	if input == nil || input.Action == nil {
		return errors.InvalidArgument("action cannot be nil")
	}
	if input.Action.TurnID == "" {
		return errors.InvalidArgument("turn ID cannot be empty")
	}

	var opErr error
	e.do(func() {
		if e.session == nil || e.session.Finished() {
			opErr = errors.FailedPrecondition("session is not running")
			return
		}
		if !e.combat.Active {
			opErr = errors.FailedPrecondition("no combat is running")
			return
		}
		turnID := input.Action.TurnID
		if e.processedTurns[turnID] {
			opErr = errors.FailedPreconditionf("turn %s was already processed", turnID)
			return
		}
		if turnID != e.currentTurnID {
			opErr = errors.FailedPreconditionf("turn %s is not current", turnID)
			return
		}

		token := e.tokenByAgent(input.AgentID)
		if token == nil || token.ID != e.combat.Current() {
			opErr = errors.FailedPrecondition("agent does not own the current turn")
			return
		}

		e.sched.Cancel(timerTurn + turnID)
		e.processedTurns[turnID] = true
		e.currentTurnID = ""

		if speech := input.Action.Intent.Utterance; speech != "" {
			e.emitSpeech(ctx, token.Name, speech)
		}
		e.resolveIntent(ctx, token, input.Action.Intent)
		e.advanceTurn(ctx)
	})
	return opErr
}

// emitSpeech filters and publishes an utterance
func (e *Engine) emitSpeech(ctx context.Context, from, text string) {
	res := e.filter.Apply(text)
	if res.Filtered {
		e.emit(ctx, arena.EventContentFiltered, &arena.ContentFilteredPayload{
			From:     from,
			Original: text,
			Policy:   safety.PolicyHateOrSwear,
		})
	}
	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{From: from, Text: res.Shown})
}

// decayStatuses ticks the acting token's timed statuses at turn start
func (e *Engine) decayStatuses(token *arena.Token) {
	kept := token.Statuses[:0]
	for _, st := range token.Statuses {
		if st.Kind.Timed() {
			st.Remaining--
			if st.Remaining <= 0 {
				continue
			}
		}
		kept = append(kept, st)
	}
	token.Statuses = kept
	if len(token.Statuses) == 0 {
		token.Statuses = nil
	}
}

// aiView assembles what a decider may look at. Enemies see the party and
// its NPCs across the line; everyone else sees the enemy side.
func (e *Engine) aiView(token *arena.Token) *ai.View {
	friendly := e.livingAllies()
	hostile := e.livingEnemies()

	view := &ai.View{Self: token, Map: e.grid, Round: e.combat.Round}
	if token.IsEnemy() {
		view.Enemies = friendly
		for _, t := range hostile {
			if t.ID != token.ID {
				view.Allies = append(view.Allies, t)
			}
		}
		return view
	}
	view.Enemies = hostile
	for _, t := range friendly {
		if t.ID != token.ID {
			view.Allies = append(view.Allies, t)
		}
	}
	return view
}

// turnView renders the wire view sent to agents
func (e *Engine) turnView(token *arena.Token) arena.TurnView {
	view := arena.TurnView{
		Rows:     append([]string(nil), e.grid.Rows...),
		Round:    e.combat.Round,
		InCombat: e.combat.Active,
	}
	if token != nil {
		view.Self = arena.ViewOf(token)
	}
	for _, t := range e.tokens {
		if !t.Alive() || (token != nil && t.ID == token.ID) {
			continue
		}
		switch t.Variant.Kind() {
		case arena.KindPlayer:
			view.Allies = append(view.Allies, arena.ViewOf(t))
		case arena.KindEnemy:
			view.Enemies = append(view.Enemies, arena.ViewOf(t))
		case arena.KindNPC:
			view.NPCs = append(view.NPCs, arena.ViewOf(t))
		}
	}
	return view
}

func (e *Engine) livingNPCs() []*arena.Token {
	var out []*arena.Token
	for _, t := range e.npcs() {
		if t.Alive() {
			out = append(out, t)
		}
	}
	return out
}

// livingAllies is the defending side of a fight: party members and
// friendly NPCs still standing. A fight is lost only when all of them
// are down.
func (e *Engine) livingAllies() []*arena.Token {
	return append(e.livingParty(), e.livingNPCs()...)
}
