// Package quotes implements the quotation lifecycle: the status state machine,
// line-item editing with snapshot pricing, and the service that persists quote
// documents through the backend API.
package quotes

import (
	"fmt"
	"time"

	"github.com/sayeedajmal/saudimart-core/pkg/catalog"
	"github.com/sayeedajmal/saudimart-core/pkg/enums"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
)

// allowedTransitions is the complete lifecycle table. Accepted, rejected and
// expired are terminal; nothing leaves them.
var allowedTransitions = map[enums.QuoteStatus][]enums.QuoteStatus{
	enums.QuoteStatusDraft: {enums.QuoteStatusSent, enums.QuoteStatusExpired},
	enums.QuoteStatusSent:  {enums.QuoteStatusAccepted, enums.QuoteStatusRejected, enums.QuoteStatusExpired},
}

func transitionAllowed(from, to enums.QuoteStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Transition moves the quote to the target status. On rejection the quote is
// left untouched and the caller gets INVALID_TRANSITION.
func Transition(quote *catalog.Quote, to enums.QuoteStatus) error {
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown quote status %q", to))
	}
	if !transitionAllowed(quote.Status, to) {
		return pkgerrors.New(pkgerrors.CodeInvalidTransition,
			fmt.Sprintf("cannot move quote from %s to %s", quote.Status, to)).
			WithDetails(map[string]any{
				"from": quote.Status.String(),
				"to":   to.String(),
			})
	}
	quote.Status = to
	return nil
}

// ExpireIfDue moves a draft or sent quote to expired once its validity window
// has elapsed, and reports whether it did. Terminal quotes are never touched.
func ExpireIfDue(quote *catalog.Quote, now time.Time) bool {
	if quote.Status.IsTerminal() || quote.ValidUntil.IsZero() {
		return false
	}
	if !now.After(quote.ValidUntil) {
		return false
	}
	quote.Status = enums.QuoteStatusExpired
	return true
}
