// Package rptservices holds the reference SER services: Chat, Lobby and
// Admin. All three are ordinary rptcore.Service implementations built by embedding
// rptcore.ServiceBase, the same composition-over-inheritance shape every
// Service in this module follows. See SPEC_FULL.md §6.4.
package rptservices

import (
	"fmt"
	"strings"

	"github.com/sebas/rpt-server/internal/rptcore"
)

// Chat is the minimal reference service: broadcast a trimmed message,
// enforce a per-instance cooldown between two messages from anyone.
// Grounded on the original ChatService: trim the message, refuse it if
// empty, refuse it again if the cooldown timer hasn't cleared, otherwise
// emit and re-arm the cooldown.
type Chat struct {
	rptcore.ServiceBase

	cooldown    *rptcore.Timer
	cooldownMsg string
}

// NewChat builds a Chat service with a cooldown of cooldownMs milliseconds
// between accepted messages.
func NewChat(ctx *rptcore.ServiceContext, cooldownMs uint) *Chat {
	cooldown := rptcore.NewTimer(ctx, cooldownMs)
	return &Chat{
		ServiceBase: rptcore.NewServiceBase(ctx, cooldown),
		cooldown:    cooldown,
		cooldownMsg: fmt.Sprintf("Last message when sent less than %d ms ago", cooldownMs),
	}
}

// Name implements rptcore.Service.
func (c *Chat) Name() string { return "Chat" }

// HandleRequest implements rptcore.Service.
func (c *Chat) HandleRequest(actorUID uint64, srData string) rptcore.HandlingResult {
	message := strings.TrimSpace(srData)
	if message == "" {
		return rptcore.Failure("Message cannot be empty")
	}

	if c.cooldown.HasTriggered() {
		c.cooldown.Clear()
	}
	if !c.cooldown.IsFree() {
		return rptcore.Failure(c.cooldownMsg)
	}

	c.EmitEvent(rptcore.NewBroadcastEvent(fmt.Sprintf("MESSAGE_FROM %d %s", actorUID, message)))

	if err := c.cooldown.RequestCountdown(); err != nil {
		// Programmer error: IsFree() above already guaranteed Disabled.
		panic(err)
	}

	return rptcore.Success()
}
