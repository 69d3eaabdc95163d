package links

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsApp_StripsNonDigitsAndEscapesText(t *testing.T) {
	link := WhatsApp("+91 98765-43210", "Hi Bakery & Co, 2 rolls?")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919876543210", u.Path)
	assert.Equal(t, "Hi Bakery & Co, 2 rolls?", u.Query().Get("text"))
}

func TestMaps_QueryCombinesShopAndLocation(t *testing.T) {
	link := Maps("My Bakery", "Raja Park")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	assert.Equal(t, "/maps/search/", u.Path)
	assert.Equal(t, "1", u.Query().Get("api"))
	assert.Equal(t, "My Bakery Raja Park", u.Query().Get("query"))
}

func TestReservationMessage(t *testing.T) {
	msg := ReservationMessage("My Bakery", "Cream Roll", 2050)
	assert.Equal(t, "Hi My Bakery, I'd like to reserve Cream Roll for ₹20.50. Is it still available?", msg)
}

func TestWhatsApp_RoundTripsUnicode(t *testing.T) {
	text := ReservationMessage("दुकान", "Samosa", 1000)
	link := WhatsApp("919876543210", text)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))
}
