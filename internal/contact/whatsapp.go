// Package contact builds the outbound messaging deep links used by the
// "contact the agency" actions. The link targets an external messaging
// service; nothing here is part of the marketplace's own protocol.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

const deepLinkBase = "https://wa.me/"

// InquiryLink returns a deep link that opens a chat with the agency phone
// number, pre-filled with message. The phone number keeps digits only.
func InquiryLink(phone, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) < 8 {
		return "", fmt.Errorf("invalid phone number %q", phone)
	}

	link := deepLinkBase + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}

// PropertyInquiry composes the standard pre-filled inquiry text for a
// listing.
func PropertyInquiry(greeting, title, propertyURL string) string {
	var b strings.Builder
	b.WriteString(greeting)
	if title != "" {
		b.WriteString(" : ")
		b.WriteString(title)
	}
	if propertyURL != "" {
		b.WriteString(" - ")
		b.WriteString(propertyURL)
	}
	return b.String()
}
