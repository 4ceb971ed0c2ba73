package demo

import "github.com/arenaforge/arena-api/internal/rules"

// phase keys the narration pools are organized by
type phase string

const (
	phaseIntro         phase = "intro"
	phaseExploration   phase = "exploration"
	phaseCombatStart   phase = "combat_start"
	phaseBetweenRounds phase = "between_rounds"
	phaseEnding        phase = "ending"
)

// titles is the showcase session title per genre
var titles = map[string]string{
	rules.GenreFactory:    "버려진 공장의 기계 반란",
	rules.GenreDatacenter: "데이터센터 침투 작전",
	rules.GenreCity:       "네온 시티 탈출극",
}

// narration holds the DM lines per genre and phase. Lines within a phase
// are played round-robin so repeated beats do not repeat text.
var narration = map[string]map[phase][]string{
	rules.GenreFactory: {
		phaseIntro: {
			"녹슨 철문이 끼익 소리를 내며 열린다. 버려진 공장 안은 기름 냄새와 정적뿐이다.",
			"천장의 비상등이 깜빡인다. 어딘가에서 컨베이어 벨트가 혼자 돌아가는 소리가 들린다.",
		},
		phaseExploration: {
			"통로 곳곳에 버려진 부품 상자가 쌓여 있다. 발소리를 죽이고 나아가야 한다.",
			"바닥에 기름이 번져 있다. 잘못 디디면 미끄러질 것 같다.",
		},
		phaseCombatStart: {
			"경고음이 울린다! 공장의 방위 시스템이 침입자를 감지했다!",
			"어둠 속에서 붉은 센서 불빛들이 일제히 켜진다. 전투 준비!",
		},
		phaseBetweenRounds: {
			"기계 잔해에서 연기가 피어오른다. 하지만 공장 깊은 곳에서 또 다른 구동음이 들린다.",
			"짧은 정적. 파티는 숨을 고르고 장비를 점검한다.",
		},
		phaseEnding: {
			"마지막 기계가 멈추자 공장에 진짜 정적이 내려앉는다.",
			"임무 완료. 파티는 녹슨 철문을 뒤로하고 공장을 빠져나간다.",
		},
	},
	rules.GenreDatacenter: {
		phaseIntro: {
			"서버랙이 끝없이 늘어선 복도. 냉각팬의 소음이 발소리를 삼킨다.",
			"푸른 LED 불빛 아래, 침투 작전이 시작된다.",
		},
		phaseExploration: {
			"케이블 다발이 바닥을 기어간다. 감시 카메라의 사각을 찾아 움직여야 한다.",
			"코어 룸까지는 아직 멀다. 보안 구역의 경계가 점점 삼엄해진다.",
		},
		phaseCombatStart: {
			"침입 감지! 보안 프로토콜이 발동되고 격벽이 내려온다!",
			"서버랙 사이에서 보안 유닛들이 기동한다. 교전 개시!",
		},
		phaseBetweenRounds: {
			"쓰러진 보안봇의 LED가 꺼진다. 그러나 경보는 아직 울리고 있다.",
			"파티는 서버랙 뒤에 몸을 숨기고 다음 구역을 살핀다.",
		},
		phaseEnding: {
			"코어 룸의 문이 열린다. 작전 목표 달성.",
			"경보가 멎고, 데이터센터는 다시 냉각팬 소리만 남는다.",
		},
	},
	rules.GenreCity: {
		phaseIntro: {
			"네온 간판이 빗물에 번진다. 통제 구역의 밤거리는 드론 순찰로 가득하다.",
			"도시 외곽까지 살아서 나가야 한다. 탈출극의 막이 오른다.",
		},
		phaseExploration: {
			"골목 안쪽은 어둡다. 순찰 드론의 서치라이트가 벽을 훑고 지나간다.",
			"버려진 노점 뒤로 몸을 숨기며 한 블록씩 전진한다.",
		},
		phaseCombatStart: {
			"서치라이트가 파티를 정통으로 비춘다. 발각됐다!",
			"사이렌이 울리고 경비 기체들이 골목을 봉쇄한다. 싸워서 뚫는 수밖에!",
		},
		phaseBetweenRounds: {
			"추격이 잠시 끊겼다. 빗소리 사이로 다음 순찰대의 로터음이 다가온다.",
			"파티는 네온 불빛 아래에서 상처를 동여맨다.",
		},
		phaseEnding: {
			"도시 경계의 검문소가 불탄 채 열려 있다. 탈출 성공.",
			"멀어지는 사이렌 소리를 뒤로하고 파티는 어둠 속으로 사라진다.",
		},
	},
}

// playerSpeech holds in-character lines per class, played round-robin
var playerSpeech = map[string][]string{
	rules.ClassFighter: {
		"내가 앞장선다. 뒤에 붙어라.",
		"이 정도 고철은 방패로도 충분하다.",
	},
	rules.ClassCleric: {
		"모두 무리하지 마. 치유는 내가 맡는다.",
		"버텨! 지금 치유 들어간다!",
	},
	rules.ClassRogue: {
		"소음은 최소로. 내가 먼저 살펴보지.",
		"약점은 이미 봐뒀다.",
	},
}

// floorNarration is cycled as a roguelike run descends
var floorNarration = []string{
	"다음 층으로 내려가는 통로가 열린다. 공기가 한층 더 차갑다.",
	"아래층의 구동음이 바닥을 타고 울린다. 적들이 기다리고 있다.",
	"계단 아래는 더 어둡다. 파티는 무기를 고쳐 쥔다.",
	"벽의 경고 표식이 늘어난다. 깊이 내려왔다는 뜻이다.",
}

// bossNarration plays when the final floor opens
const bossNarration = "최하층. 거대한 실루엣이 어둠 속에서 몸을 일으킨다. 여기가 끝이다."

// floorLine picks the narration for a floor, the boss line on the last
func floorLine(floor, maxFloor int) string {
	if floor >= maxFloor {
		return bossNarration
	}
	return floorNarration[(floor-1)%len(floorNarration)]
}

// speechFor picks a class line by beat index
func speechFor(class string, beat int) string {
	lines := playerSpeech[class]
	if len(lines) == 0 {
		return ""
	}
	return lines[beat%len(lines)]
}
