package rptservices

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sebas/rpt-server/internal/rptcore"
)

// adminUID is the hard-coded actor UID allowed to issue KICK — spec.md's
// Non-goals stop short of any richer authorization than this predicate.
const adminUID = 0

// Admin is a small inspection/moderation service: STATS for any actor,
// KICK restricted to adminUID. Supplements spec.md per SPEC_FULL.md §4.10;
// grounded on the admin predicate inlined into Executor.cpp's in-file
// ChatService in original_source, generalized into its own service here.
type Admin struct {
	rptcore.ServiceBase

	countActors   func() int
	countServices func() int
	startedAt     time.Time
}

// NewAdmin builds an Admin service. countActors and countServices are
// queried fresh on every STATS request so the snapshot is always current.
func NewAdmin(ctx *rptcore.ServiceContext, countActors, countServices func() int) *Admin {
	return &Admin{
		ServiceBase:   rptcore.NewServiceBase(ctx),
		countActors:   countActors,
		countServices: countServices,
		startedAt:     time.Now(),
	}
}

// Name implements rptcore.Service.
func (a *Admin) Name() string { return "Admin" }

// HandleRequest implements rptcore.Service.
func (a *Admin) HandleRequest(actorUID uint64, srData string) rptcore.HandlingResult {
	parser, err := rptcore.NewTextParser(srData, 1)
	if err != nil {
		return rptcore.Failure("unknown Admin command")
	}
	command, _ := parser.Word(0)

	switch command {
	case "STATS":
		uptime := int64(time.Since(a.startedAt).Seconds())
		snapshot := fmt.Sprintf("SNAPSHOT %d %d %d", a.countActors(), a.countServices(), uptime)
		a.EmitEvent(rptcore.NewTargetedEvent(snapshot, actorUID))
		return rptcore.Success()

	case "KICK":
		if actorUID != adminUID {
			return rptcore.Failure("permission denied")
		}
		kickParser, parseWordsErr := rptcore.NewTextParser(srData, 2)
		if parseWordsErr != nil {
			return rptcore.Failure("KICK requires a target uid")
		}
		uidWord, _ := kickParser.Word(1)
		targetUID, parseErr := strconv.ParseUint(uidWord, 10, 64)
		if parseErr != nil {
			return rptcore.Failure("KICK requires a numeric target uid")
		}
		a.EmitEvent(rptcore.NewTargetedEvent(fmt.Sprintf("KICKED %d", targetUID), targetUID))
		return rptcore.Success()

	default:
		return rptcore.Failure("unknown Admin command")
	}
}
