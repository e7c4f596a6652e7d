package order

import "net/url"

// Handoff builds the locator string used to hand a finished order off to the
// external messaging channel. The locator is opened by the client in a new
// browsing context; the server never dials it and never verifies the
// endpoint is reachable.
type Handoff struct {
	// Endpoint is the messaging composer base, e.g. "https://wa.me/8668722207".
	Endpoint string
	// DocumentBaseURL is the public base URL under which generated order
	// documents are served.
	DocumentBaseURL string
}

// Locator returns "<endpoint>?text=<url-encoded message>" where the message
// carries a reference to the named document.
func (h Handoff) Locator(documentName string) string {
	message := "Order document: " + h.DocumentBaseURL + "/" + documentName
	return h.Endpoint + "?text=" + url.QueryEscape(message)
}
