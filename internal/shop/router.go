package shop

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Coordinator is one subsystem's transition function: given the session
// and an envelope addressed to it, produce the next envelope. Returning an
// envelope addressed to itself settles the turn; any other destination is
// a handoff.
type Coordinator interface {
	Handle(ctx context.Context, s *Session, env Envelope) Envelope
}

// Router is the head coordinator. It holds which subsystem currently owns
// the conversation and trampolines handoffs until a turn settles. Handoffs
// are followed in a loop rather than by recursion, so a pathological
// handoff chain cannot grow the stack.
type Router struct {
	coordinators map[Subsystem]Coordinator
	accounts     *AccountCoordinator
	owner        Subsystem
	log          zerolog.Logger
}

// NewRouter wires the four subsystem coordinators. The conversation
// starts owned by ACCOUNT.
func NewRouter(accounts *AccountCoordinator, store *StoreCoordinator, messaging *MessagingCoordinator, reporting *ReportingCoordinator, logger zerolog.Logger) *Router {
	return &Router{
		coordinators: map[Subsystem]Coordinator{
			SubsystemAccount:   accounts,
			SubsystemStore:     store,
			SubsystemMessaging: messaging,
			SubsystemReporting: reporting,
		},
		accounts: accounts,
		owner:    SubsystemAccount,
		log:      logger.With().Str("component", "router").Logger(),
	}
}

// Owner returns the subsystem currently owning the conversation. The next
// line of user input is addressed to it.
func (r *Router) Owner() Subsystem {
	return r.owner
}

// Dispatch runs one external input event to a settled turn: it invokes the
// destination coordinator, follows handoffs until a coordinator answers to
// itself, and returns the settled envelope whose text is to be displayed.
//
// Leaving STORE persists the session account first: the storefront mutates
// cart, cards, and address in memory, and dropping this save would silently
// lose those edits.
func (r *Router) Dispatch(ctx context.Context, s *Session, env Envelope) Envelope {
	for {
		c, ok := r.coordinators[env.Dest]
		if !ok {
			// The tag set is closed by construction; an unknown
			// destination is a programming defect, not a runtime
			// error to recover from.
			panic(fmt.Sprintf("shop: no coordinator for subsystem %q", env.Dest))
		}

		res := c.Handle(ctx, s, env)

		if res.Dest == env.Dest {
			r.owner = res.Dest
			return res
		}

		r.log.Debug().
			Str("from", string(env.Dest)).
			Str("to", string(res.Dest)).
			Msg("handoff")

		switch env.Dest {
		case SubsystemStore:
			r.accounts.PersistCurrent(ctx, s)
		case SubsystemMessaging:
			// A payload-carrying handoff is a request made on
			// messaging's behalf; the flow resumes when the reply
			// routes back. Only a plain exit drops the flow state.
			if res.Payload == nil {
				s.msg = messagingFlow{}
			}
		}

		r.owner = res.Dest
		env = res
	}
}
