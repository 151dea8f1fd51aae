package compose

import "tw-agent/agent/internal/core"

// Policy captures how verbose a reply may be on a given channel. The
// composer consults it once instead of branching on the channel throughout.
type Policy struct {
	// MaxWallets is how many top wallets to list.
	MaxWallets int
	// Show24hChange adds the 24h-change line (compact channels only; the
	// extended telegram view carries per-window observations instead).
	Show24hChange bool
	// ShowExtended enables the token-information block (name, address,
	// description), the full observation list, and social links. Still
	// requires a non-empty description.
	ShowExtended bool
	// MedalMarkers decorates ranked wallets with medal emoji.
	MedalMarkers bool
	// VisibleErrors surfaces upstream failures to the user.
	VisibleErrors bool
}

// ErrorsVisible reports whether upstream failures are surfaced to the user
// on the given channel.
func ErrorsVisible(source core.Source) bool {
	return policyFor(source).VisibleErrors
}

func policyFor(source core.Source) Policy {
	if source == core.SourceTelegram {
		return Policy{
			MaxWallets:    5,
			Show24hChange: false,
			ShowExtended:  true,
			MedalMarkers:  true,
			VisibleErrors: true,
		}
	}
	return Policy{
		MaxWallets:    1,
		Show24hChange: true,
		ShowExtended:  false,
		MedalMarkers:  false,
		VisibleErrors: false,
	}
}
