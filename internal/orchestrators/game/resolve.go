package game

import (
	"context"
	"fmt"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/rules"
)

// resolveIntent applies a declared action. Unknown or malformed intents
// are dropped without touching state; the turn is still spent.
func (e *Engine) resolveIntent(ctx context.Context, token *arena.Token, intent arena.Intent) {
	switch intent.Type {
	case arena.IntentMove:
		if intent.To == nil {
			return
		}
		e.resolveMove(ctx, token, *intent.To)

	case arena.IntentAttack:
		e.resolveMelee(ctx, token, intent.TargetID)

	case arena.IntentRangedAttack:
		e.resolveRanged(ctx, token, intent.TargetID)

	case arena.IntentSpellAttack:
		e.resolveSpell(ctx, token, intent.TargetID)

	case arena.IntentHeal:
		e.resolveHeal(ctx, token, intent.TargetID)

	case arena.IntentProtect:
		e.resolveProtect(ctx, token, intent.TargetID)

	case arena.IntentSkillCheck:
		e.resolveSkillCheck(ctx, token, intent.Skill)

	case arena.IntentUsePotion:
		e.resolvePotion(ctx, token)

	case arena.IntentDefend:
		e.resolveDefend(ctx, token)

	case arena.IntentTalk:
		// Speech is published before resolution; talking is the whole turn
	}
}

// resolveMove walks the token toward the destination within its budget
// and applies whatever tile it lands on.
func (e *Engine) resolveMove(ctx context.Context, token *arena.Token, to arena.Position) {
	budget := rules.MoveBudget(token)
	if token.HasStatus(arena.StatusSpdBoost) {
		budget += 2
	}

	dest := rules.CoerceMove(e.grid, token.Pos, to, budget, rules.OccupiedSet(e.tokens, token.ID))
	if dest == token.Pos {
		return
	}
	from := token.Pos
	token.Pos = dest
	e.emit(ctx, arena.EventTokenMoved, &arena.TokenMovedPayload{
		TokenID: token.ID,
		From:    from,
		To:      dest,
	})
	e.applyTileEffects(ctx, token)
}

// applyTileEffects handles the tile the token stopped on: hazards bite,
// items are picked up and the tile clears.
func (e *Engine) applyTileEffects(ctx context.Context, token *arena.Token) {
	switch e.grid.TileAt(token.Pos) {
	case arena.TileHazard:
		_, total := e.roll(ctx, token, "1d4", "hazard")
		e.damageToken(ctx, nil, token, total, "hazard")

	case arena.TileItem:
		e.pickupItem(ctx, token)
	}
}

func (e *Engine) pickupItem(ctx context.Context, token *arena.Token) {
	kind, ok := e.items[token.Pos]
	if !ok {
		return
	}
	delete(e.items, token.Pos)
	e.grid.SetTile(token.Pos, arena.TileFloor)

	info := rules.ItemPickupTable[kind]
	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
		From: "SYSTEM",
		Text: fmt.Sprintf("%s %s — %s 획득!", info.Icon, token.Name, info.Name),
	})

	switch kind {
	case rules.ItemHPPotion:
		heal := token.MaxHP * 30 / 100
		e.healToken(ctx, token, heal, "item")
	case rules.ItemAtkBoost:
		token.AddStatus(arena.NewTimed(arena.StatusAtkBoost, 2))
	case rules.ItemDefBoost:
		token.AddStatus(arena.NewTimed(arena.StatusDefBoost, 2))
	case rules.ItemSpdBoost:
		token.AddStatus(arena.NewTimed(arena.StatusSpdBoost, 2))
	}

	// The tile changed, so stream consumers need a fresh snapshot
	e.emitMapState(ctx)
}

// resolveMelee closes distance first when out of reach; if the token
// still cannot reach its target the turn was spent moving.
func (e *Engine) resolveMelee(ctx context.Context, token *arena.Token, targetID string) {
	target := e.hostileTarget(token, targetID)
	if target == nil {
		return
	}

	if rules.Manhattan(token.Pos, target.Pos) > 1 {
		e.resolveMove(ctx, token, target.Pos)
		if rules.Manhattan(token.Pos, target.Pos) > 1 {
			return
		}
	}
	e.resolveAttack(ctx, token, target, false, "melee")
}

func (e *Engine) resolveRanged(ctx context.Context, token *arena.Token, targetID string) {
	target := e.hostileTarget(token, targetID)
	if target == nil {
		return
	}
	if rules.Manhattan(token.Pos, target.Pos) > rules.RangedRange ||
		!rules.HasLineOfSight(e.grid, token.Pos, target.Pos) {
		e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
			From: "SYSTEM",
			Text: fmt.Sprintf("%s의 사격이 빗나갔다. 목표가 사거리 밖이다.", token.Name),
		})
		return
	}
	e.resolveAttack(ctx, token, target, true, "ranged")
}

// spellToHit marks auto-hit spell attacks on the wire
const spellToHit = 99

// resolveSpell is the cleric's bolt: auto-hit 1d10 inside ranged reach
// with line of sight.
func (e *Engine) resolveSpell(ctx context.Context, token *arena.Token, targetID string) {
	target := e.hostileTarget(token, targetID)
	if target == nil {
		return
	}
	if rules.Manhattan(token.Pos, target.Pos) > rules.RangedRange ||
		!rules.HasLineOfSight(e.grid, token.Pos, target.Pos) {
		e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
			From: "SYSTEM",
			Text: fmt.Sprintf("%s의 주문이 닿지 않는다.", token.Name),
		})
		return
	}

	_, total := e.roll(ctx, token, "1d10", "spell_damage")
	dmg := e.mitigate(target, total)
	e.emit(ctx, arena.EventAttackResolved, &arena.AttackResolvedPayload{
		AttackerID: token.ID,
		TargetID:   target.ID,
		Kind:       "spell",
		Hit:        true,
		ToHit:      spellToHit,
		Damage:     dmg,
	})
	e.damageToken(ctx, token, target, dmg, "spell")
}

func (e *Engine) resolveHeal(ctx context.Context, token *arena.Token, targetID string) {
	target := e.tokenByID(targetID)
	if target == nil {
		target = token
	}
	_, total := e.roll(ctx, token, "1d8+2", "heal")
	e.healToken(ctx, target, total, "heal")
}

func (e *Engine) resolveProtect(ctx context.Context, token *arena.Token, targetID string) {
	target := e.tokenByID(targetID)
	if target == nil {
		target = token
	}
	// The ward both hardens the target against the next incoming attack
	// and blunts it if it lands anyway. Repeated casts stack; each hit
	// burns one instance.
	target.AddStatus(arena.NewFlag(arena.StatusProtect))
	target.AddStatus(arena.NewFlag(arena.StatusACBoost))
	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
		From: "SYSTEM",
		Text: fmt.Sprintf("%s의 보호막이 %s를 감쌌다.", token.Name, target.Name),
	})
}

// resolveSkillCheck rolls against the DM's pending DC, or the default
// when the DM never set one. The pending DC is consumed either way.
func (e *Engine) resolveSkillCheck(ctx context.Context, token *arena.Token, skill string) {
	dc := rules.DefaultDC
	if e.pendingDC > 0 {
		dc = e.pendingDC
		if skill == "" {
			skill = e.pendingSkill
		}
	}
	e.pendingDC = 0
	e.pendingSkill = ""

	bonus := rules.SkillBonus(token, skill)
	roll, err := e.roller.Roll(20)
	if err != nil {
		e.log.Error("skill check roll failed", "token_id", token.ID, "error", err)
		roll = 10
	}
	total := roll + bonus
	success := total >= dc
	e.emit(ctx, arena.EventDiceRolled, &arena.DiceRolledPayload{
		TokenID:  token.ID,
		Notation: fmt.Sprintf("1d20+%d", bonus),
		Rolls:    []int{roll},
		Total:    total,
		Reason:   "skill_check:" + skill,
		DC:       dc,
		Success:  &success,
	})
}

func (e *Engine) resolvePotion(ctx context.Context, token *arena.Token) {
	if e.potions <= 0 {
		e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
			From: "SYSTEM",
			Text: "남은 포션이 없다.",
		})
		return
	}
	e.potions--
	_, total := e.roll(ctx, token, "2d4+2", "potion")
	e.healToken(ctx, token, total, "potion")
}

func (e *Engine) resolveDefend(ctx context.Context, token *arena.Token) {
	token.AddStatus(arena.NewFlag(arena.StatusDefend))
	e.emit(ctx, arena.EventChatMessage, &arena.ChatMessagePayload{
		From: "SYSTEM",
		Text: fmt.Sprintf("%s이(가) 방어 자세를 취했다.", token.Name),
	})
}

// resolveAttack is the shared to-hit and damage pipeline. The published
// to-hit roll shows the token's own modifier; the attack boost feeds the
// hit check without appearing in the notation.
func (e *Engine) resolveAttack(ctx context.Context, attacker, target *arena.Token, ranged bool, kind string) {
	spec := rules.TokenAttackSpec(attacker, ranged)
	base := spec.ToHitBonus + attacker.Atk
	bonus := base
	if attacker.HasStatus(arena.StatusAtkBoost) {
		bonus += 2
	}

	roll, err := e.roller.Roll(20)
	if err != nil {
		e.log.Error("to-hit roll failed", "token_id", attacker.ID, "error", err)
		roll = 10
	}
	e.emit(ctx, arena.EventDiceRolled, &arena.DiceRolledPayload{
		TokenID:  attacker.ID,
		Notation: fmt.Sprintf("1d20+%d", base),
		Rolls:    []int{roll},
		Total:    roll + base,
		Reason:   "to_hit",
	})

	// The reactive AC boost burns whether or not the attack lands
	ac := target.AC
	if target.ConsumeStatus(arena.StatusACBoost) {
		ac += 2
	}
	if target.HasStatus(arena.StatusDefBoost) {
		ac += 2
	}

	toHit := roll + bonus
	if toHit < ac {
		e.emit(ctx, arena.EventAttackResolved, &arena.AttackResolvedPayload{
			AttackerID: attacker.ID,
			TargetID:   target.ID,
			Kind:       kind,
			Hit:        false,
			ToHit:      toHit,
			AC:         ac,
		})
		return
	}

	_, total := e.roll(ctx, attacker, spec.DamageDice, "damage")
	dmg := e.mitigate(target, total)
	e.emit(ctx, arena.EventAttackResolved, &arena.AttackResolvedPayload{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Kind:       kind,
		Hit:        true,
		ToHit:      toHit,
		AC:         ac,
		Damage:     dmg,
	})
	e.damageToken(ctx, attacker, target, dmg, "attack")
}

// mitigate applies the one-shot damage reductions: protect absorbs 5,
// defend absorbs 3, damage never goes negative. Stacked instances burn
// one per hit.
func (e *Engine) mitigate(target *arena.Token, dmg int) int {
	if target.ConsumeStatus(arena.StatusProtect) {
		dmg -= 5
	}
	if target.ConsumeStatus(arena.StatusDefend) {
		dmg -= 3
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// damageToken applies damage, publishes the HP change, and credits the
// kill to a roguelike run when one is live.
func (e *Engine) damageToken(ctx context.Context, attacker, target *arena.Token, dmg int, reason string) {
	if dmg <= 0 {
		return
	}
	hp := target.ApplyDamage(dmg)
	e.emit(ctx, arena.EventHPChanged, &arena.HPChangedPayload{
		TokenID: target.ID,
		HP:      hp,
		MaxHP:   target.MaxHP,
		Delta:   -dmg,
		Reason:  reason,
	})
	if hp == 0 && e.run != nil && attacker != nil {
		if v := target.Enemy(); v != nil {
			e.run.OnEnemyKilled(attacker, v.Archetype)
		}
	}
}

func (e *Engine) healToken(ctx context.Context, target *arena.Token, amount int, reason string) {
	before := target.HP
	after := target.ApplyHeal(amount)
	if after == before {
		return
	}
	e.emit(ctx, arena.EventHPChanged, &arena.HPChangedPayload{
		TokenID: target.ID,
		HP:      after,
		MaxHP:   target.MaxHP,
		Delta:   after - before,
		Reason:  reason,
	})
}

// roll publishes a notation roll for a token and returns it
func (e *Engine) roll(ctx context.Context, token *arena.Token, notation, reason string) ([]int, int) {
	rolls, total, err := rules.RollNotation(e.roller, notation)
	if err != nil {
		e.log.Error("roll failed", "notation", notation, "error", err)
		return nil, 0
	}
	e.emit(ctx, arena.EventDiceRolled, &arena.DiceRolledPayload{
		TokenID:  token.ID,
		Notation: notation,
		Rolls:    rolls,
		Total:    total,
		Reason:   reason,
	})
	return rolls, total
}

// hostileTarget resolves an attack's named target. A missing, dead, or
// self-referencing id resolves to nil and the attack is dropped; the
// deciders always name a living target themselves.
func (e *Engine) hostileTarget(token *arena.Token, targetID string) *arena.Token {
	t := e.tokenByID(targetID)
	if t == nil || !t.Alive() || t.ID == token.ID {
		return nil
	}
	return t
}
