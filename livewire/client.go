package livewire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/mirai/key"
	"github.com/anisan-cli/mirai/log"
	"github.com/anisan-cli/mirai/network"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/viper"
)

var (
	// ErrMalformed is returned when the server answers with an unexpected shape.
	ErrMalformed = errors.New("malformed livewire response")

	// ErrPageLimit is returned when a component keeps offering more pages past the configured ceiling.
	ErrPageLimit = errors.New("livewire page limit reached")
)

// Call invokes a component method.
type Call struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

// LoadMore asks an infinite-scroll component for its next page.
var LoadMore = Call{Path: "", Method: "loadMore", Params: []any{}}

// Request is one component update.
type Request struct {
	Updates map[string]any
	Calls   []Call
}

type payload struct {
	Token      string      `json:"_token"`
	Components []component `json:"components"`
}

type component struct {
	Snapshot string         `json:"snapshot"`
	Updates  map[string]any `json:"updates"`
	Calls    []Call         `json:"calls"`
}

type response struct {
	Components []struct {
		Snapshot string `json:"snapshot"`
		Effects  struct {
			HTML *string `json:"html"`
		} `json:"effects"`
	} `json:"components"`
}

// Client talks to the Livewire endpoints of one site.
type Client struct {
	base     string
	http     *resty.Client
	maxPages int
}

// NewClient returns a client for the site at base. Cookies are managed
// through sessions, so http should not carry a cookie jar.
func NewClient(base string, http *resty.Client) *Client {
	return &Client{
		base:     strings.TrimSuffix(base, "/"),
		http:     http,
		maxPages: viper.GetInt(key.LivewireMaxPages),
	}
}

// SetMaxPages bounds ConsumeAll. Zero or less means no bound.
func (c *Client) SetMaxPages(n int) {
	c.maxPages = n
}

// Init opens a session from the listing page.
func (c *Client) Init(ctx context.Context) (Session, error) {
	res, err := network.Get(ctx, c.http, c.base+"/anime")
	if err != nil {
		return Session{}, err
	}

	doc, err := network.Parse(res)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:    Token(doc),
		Snapshot: Snapshot(doc),
		Cookies:  network.Cookies(res),
	}

	if !sess.Active() {
		return Session{}, fmt.Errorf("%w: listing page has no component snapshot", ErrMalformed)
	}

	return sess, nil
}

// Update sends one component update and returns the rendered fragment.
//
// With remember the returned session carries the server's snapshot and merged
// cookies. Without it the input session is returned unchanged.
func (c *Client) Update(ctx context.Context, sess Session, req Request, remember bool) (Session, *goquery.Document, error) {
	body := payload{
		Token: sess.Token,
		Components: []component{{
			Snapshot: sess.Snapshot,
			Updates:  req.Updates,
			Calls:    req.Calls,
		}},
	}
	if body.Components[0].Updates == nil {
		body.Components[0].Updates = map[string]any{}
	}
	if body.Components[0].Calls == nil {
		body.Components[0].Calls = []Call{}
	}

	url := c.base + "/livewire/update"
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetCookies(cookieList(sess.Cookies)).
		SetBody(body).
		Post(url)
	if err != nil {
		return sess, nil, fmt.Errorf("post %s: %w", url, err)
	}

	if err := network.Check(res); err != nil {
		return sess, nil, err
	}

	var decoded response
	if err := json.Unmarshal(res.Body(), &decoded); err != nil {
		return sess, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(decoded.Components) == 0 {
		return sess, nil, fmt.Errorf("%w: no components", ErrMalformed)
	}

	first := decoded.Components[0]
	if first.Effects.HTML == nil {
		return sess, nil, fmt.Errorf("%w: no html effect", ErrMalformed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(*first.Effects.HTML))
	if err != nil {
		return sess, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !remember {
		return sess, doc, nil
	}

	if first.Snapshot == "" {
		return sess, nil, fmt.Errorf("%w: no snapshot", ErrMalformed)
	}

	next := Session{
		Token:    sess.Token,
		Snapshot: first.Snapshot,
		Cookies:  network.MergeCookies(sess.Cookies, network.Cookies(res)),
	}

	return next, doc, nil
}

// ConsumeAll calls LoadMore until the fragment no longer offers more pages.
// It returns the final session and fragment along with the number of calls made.
func (c *Client) ConsumeAll(ctx context.Context, sess Session) (Session, *goquery.Document, int, error) {
	var doc *goquery.Document

	for calls := 1; ; calls++ {
		if c.maxPages > 0 && calls > c.maxPages {
			return sess, doc, calls - 1, fmt.Errorf("%w: %d", ErrPageLimit, c.maxPages)
		}

		next, fragment, err := c.Update(ctx, sess, Request{Calls: []Call{LoadMore}}, true)
		if err != nil {
			return sess, doc, calls - 1, err
		}

		sess, doc = next, fragment

		if !HasMore(doc) {
			log.Debugf("livewire: consumed %d pages from %s", calls, c.base)
			return sess, doc, calls, nil
		}
	}
}
