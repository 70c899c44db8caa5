package dispatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// emailPattern is the syntactic contract for addresses on both sides of
// a send: local-part "@" domain-with-dot. Deliberately basic; the relay
// performs real verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether addr satisfies the syntactic contract.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(strings.TrimSpace(addr))
}

// senderLabel is the name the email signs off with: the store name when
// set, otherwise the sender's own name.
func senderLabel(p entity.Profile) string {
	if p.StoreName != "" {
		return p.StoreName
	}
	return p.Name
}

// Subject builds the email subject line for a dispatch run.
func Subject(p entity.Profile) string {
	return fmt.Sprintf("Restock order from %s", senderLabel(p))
}

// Body renders the plain-text order email for one destination group.
// The layout is fixed and deterministic for a given group and profile.
func Body(g DestinationGroup, p entity.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", g.SupplierName)
	b.WriteString("Please prepare the following restock order:\n\n")
	for _, item := range g.Items {
		fmt.Fprintf(&b, "- %s x%d\n", item.ProductName, item.Quantity)
	}
	fmt.Fprintf(&b, "\nReply to %s with any questions.\n\n", p.Email)
	fmt.Fprintf(&b, "Thanks,\n%s", p.Name)
	if p.StoreName != "" {
		fmt.Fprintf(&b, "\n%s", p.StoreName)
	}
	b.WriteString("\n")
	return b.String()
}
