// Package livewire replays the AJAX protocol of Laravel Livewire components.
//
// A Session is a value. Every call that changes it returns the new value,
// so a caller can keep several independent sessions side by side.
package livewire

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/scrape"
)

// Session is the state the server expects back on every update.
type Session struct {
	// Token is the CSRF token of the page the session started from.
	Token string `json:"token"`
	// Snapshot is the opaque component state, echoed verbatim.
	Snapshot string `json:"snapshot"`
	// Cookies are sent with every update.
	Cookies map[string]string `json:"cookies"`
}

// Active reports whether the session was initialized.
func (s Session) Active() bool {
	return s.Snapshot != ""
}

// Fork starts a session for another component page. It keeps the parent's
// token, takes the snapshot from doc and the cookies the page was served with.
func Fork(parent Session, doc *goquery.Document, cookies map[string]string) Session {
	return Session{
		Token:    parent.Token,
		Snapshot: Snapshot(doc),
		Cookies:  cookies,
	}
}

// Snapshot extracts the component snapshot of a server-rendered page.
func Snapshot(doc *goquery.Document) string {
	value, _ := scrape.HasAttr(doc.Find("main div"), "wire:snapshot").First().Attr("wire:snapshot")
	return strings.ReplaceAll(value, "&quot;", `"`)
}

// Token extracts the CSRF token of a server-rendered page.
func Token(doc *goquery.Document) string {
	return doc.Find("script[data-csrf]").AttrOr("data-csrf", "")
}

// HasMore reports whether a fragment still carries the infinite-scroll sentinel.
func HasMore(doc *goquery.Document) bool {
	return doc.Find(`.h-12[x-intersect="$wire.loadMore()"]`).Length() > 0
}
