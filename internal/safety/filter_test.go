package safety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenaforge/arena-api/internal/safety"
)

func TestFilter_CleanTextPassesThrough(t *testing.T) {
	f := safety.New()
	res := f.Apply("앞은 내가 맡겠다!")
	assert.False(t, res.Filtered)
	assert.Equal(t, "앞은 내가 맡겠다!", res.Shown)
}

func TestFilter_MasksBlockedWords(t *testing.T) {
	f := safety.New()
	res := f.Apply("이 개새끼 로봇!")
	assert.True(t, res.Filtered)
	assert.Equal(t, "이 *** 로봇!", res.Shown)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	f := safety.New()
	res := f.Apply("What the FUCK is that")
	assert.True(t, res.Filtered)
	assert.Equal(t, "What the *** is that", res.Shown)
}

func TestFilter_ExtraWords(t *testing.T) {
	f := safety.New("toaster")
	res := f.Apply("you glorified toaster")
	assert.True(t, res.Filtered)
	assert.Equal(t, "you glorified ***", res.Shown)
}

func TestFilter_MasksRepeats(t *testing.T) {
	f := safety.New()
	res := f.Apply("shit shit")
	assert.True(t, res.Filtered)
	assert.Equal(t, "*** ***", res.Shown)
}
