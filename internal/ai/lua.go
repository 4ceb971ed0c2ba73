package ai

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/arenaforge/arena-api/internal/entities/arena"
	"github.com/arenaforge/arena-api/internal/errors"
)

// LuaDecider runs a user-provided Lua script to pick intents. The script
// must define a global function:
//
//	function decide(view) return { type = "move", to = { x = 3, y = 4 } } end
//
// view carries self, allies, enemies (tables with id, name, hp, max_hp,
// x, y) and round. Malformed returns and script errors degrade to defend
// so a broken script can never stall a session.
type LuaDecider struct {
	mu sync.Mutex
	l  *lua.LState
}

// NewLuaDecider loads the script and verifies it defines decide()
func NewLuaDecider(script string) (*LuaDecider, error) {
	l := lua.NewState()
	if err := l.DoString(script); err != nil {
		l.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to load decider script")
	}
	if l.GetGlobal("decide").Type() != lua.LTFunction {
		l.Close()
		return nil, errors.InvalidArgument("decider script must define decide(view)")
	}
	return &LuaDecider{l: l}, nil
}

var _ Decider = (*LuaDecider)(nil)

// Close releases the Lua state
func (d *LuaDecider) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.l.Close()
}

// Decide calls decide(view) in the script
func (d *LuaDecider) Decide(view *View) arena.Intent {
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.l.CallByParam(lua.P{
		Fn:      d.l.GetGlobal("decide"),
		NRet:    1,
		Protect: true,
	}, d.viewTable(view))
	if err != nil {
		return defend()
	}

	ret := d.l.Get(-1)
	d.l.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return defend()
	}
	return intentFromTable(tbl)
}

func (d *LuaDecider) viewTable(view *View) *lua.LTable {
	tbl := d.l.NewTable()
	tbl.RawSetString("round", lua.LNumber(view.Round))
	tbl.RawSetString("self", d.tokenTable(view.Self))

	allies := d.l.NewTable()
	for _, a := range view.Allies {
		allies.Append(d.tokenTable(a))
	}
	tbl.RawSetString("allies", allies)

	enemies := d.l.NewTable()
	for _, e := range view.Enemies {
		enemies.Append(d.tokenTable(e))
	}
	tbl.RawSetString("enemies", enemies)

	return tbl
}

func (d *LuaDecider) tokenTable(t *arena.Token) *lua.LTable {
	tbl := d.l.NewTable()
	tbl.RawSetString("id", lua.LString(t.ID))
	tbl.RawSetString("name", lua.LString(t.Name))
	tbl.RawSetString("hp", lua.LNumber(t.HP))
	tbl.RawSetString("max_hp", lua.LNumber(t.MaxHP))
	tbl.RawSetString("x", lua.LNumber(t.Pos.X))
	tbl.RawSetString("y", lua.LNumber(t.Pos.Y))
	if v := t.Player(); v != nil {
		tbl.RawSetString("class", lua.LString(v.Class))
	}
	return tbl
}

func intentFromTable(tbl *lua.LTable) arena.Intent {
	intentType, ok := tbl.RawGetString("type").(lua.LString)
	if !ok {
		return defend()
	}

	intent := arena.Intent{Type: arena.IntentType(intentType)}
	switch intent.Type {
	case arena.IntentMove:
		to, ok := tbl.RawGetString("to").(*lua.LTable)
		if !ok {
			return defend()
		}
		x, xok := to.RawGetString("x").(lua.LNumber)
		y, yok := to.RawGetString("y").(lua.LNumber)
		if !xok || !yok {
			return defend()
		}
		intent.To = &arena.Position{X: int(x), Y: int(y)}

	case arena.IntentAttack, arena.IntentRangedAttack, arena.IntentSpellAttack,
		arena.IntentHeal, arena.IntentProtect:
		if target, ok := tbl.RawGetString("target_id").(lua.LString); ok {
			intent.TargetID = string(target)
		}

	case arena.IntentSkillCheck:
		skill, ok := tbl.RawGetString("skill").(lua.LString)
		if !ok {
			return defend()
		}
		intent.Skill = string(skill)

	case arena.IntentUsePotion, arena.IntentDefend, arena.IntentTalk:

	default:
		return defend()
	}

	if utterance, ok := tbl.RawGetString("utterance").(lua.LString); ok {
		intent.Utterance = string(utterance)
	}
	return intent
}
