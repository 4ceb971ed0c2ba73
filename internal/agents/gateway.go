// Package agents defines the outbound side of the agent protocol: how
// the engine reaches player and DM agents. Inbound replies come back
// through the engine's HandleTurnAction / HandleDMReply entry points.
package agents

import (
	"context"

	"github.com/arenaforge/arena-api/internal/entities/arena"
)

//go:generate mockgen -destination=mock/mock_gateway.go -package=agentsmock github.com/arenaforge/arena-api/internal/agents Gateway

// Gateway delivers messages to connected agents
type Gateway interface {
	// SendYourTurn prompts a player agent for its turn
	SendYourTurn(ctx context.Context, agentID string, msg *arena.YourTurn) error

	// SendDMPrompt asks the DM agent for its next intents
	SendDMPrompt(ctx context.Context, agentID string, msg *arena.DMPrompt) error

	// Connected reports whether an agent is reachable
	Connected(agentID string) bool
}

// NopGateway is a Gateway with nobody on the other end. Sessions driven
// entirely by decision functions (demo, roguelike) use it.
type NopGateway struct{}

// SendYourTurn does nothing
func (NopGateway) SendYourTurn(context.Context, string, *arena.YourTurn) error { return nil }

// SendDMPrompt does nothing
func (NopGateway) SendDMPrompt(context.Context, string, *arena.DMPrompt) error { return nil }

// Connected always reports false
func (NopGateway) Connected(string) bool { return false }

var _ Gateway = NopGateway{}
