// Package links builds the outbound deep links handed to customers.
package links

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fairyhunter13/surplus-deals/internal/pricing"
)

// WhatsApp returns a wa.me chat link to phone with text prefilled.
// Anything that is not a digit is dropped from the number.
func WhatsApp(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

// Maps returns a map search link for a shop at a location.
func Maps(shop, location string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", strings.TrimSpace(shop+" "+location))
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// ReservationMessage is the text a customer sends the shop after reserving.
func ReservationMessage(shop, item string, price int64) string {
	return fmt.Sprintf("Hi %s, I'd like to reserve %s for ₹%s. Is it still available?",
		shop, item, pricing.Format(price))
}
