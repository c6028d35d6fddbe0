package teemo

import (
	"context"
	"io"
	"net/http"
)

const defaultBaseURL = "http://api.captainteemo.com"

// Client talks to the CaptainTeemo API. The contact string identifies the
// caller to the API operators and is sent as the User-Agent on every
// request. A Client is safe for concurrent use; it holds no mutable state
// after construction.
type Client struct {
	contact string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the transport. Timeouts are the transport's
// concern; the library imposes none of its own.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New builds a Client. The contact string is required; construction fails
// before any network activity when it is empty.
func New(contact string, opts ...Option) (*Client, error) {
	if contact == "" {
		return nil, ErrMissingContact
	}
	c := &Client{
		contact: contact,
		baseURL: defaultBaseURL,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// get dispatches a single lookup: build the path, issue the GET, read the
// whole body, validate the envelope. Every error is terminal for the
// call; transport errors pass through unmodified.
func (c *Client) get(ctx context.Context, in intent) (*Response, error) {
	path, err := in.path()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.contact)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return parseResponse(body)
}

// Player returns a summoner's profile.
func (c *Client) Player(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner})
}

// InGame returns a summoner's current game, if any.
func (c *Client) InGame(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "ingame"})
}

// RecentGames returns a summoner's match history.
func (c *Client) RecentGames(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "recent_games"})
}

// InfluencePoints returns a summoner's influence point totals.
func (c *Client) InfluencePoints(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "influence_points"})
}

// Runes returns a summoner's rune pages.
func (c *Client) Runes(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "runes"})
}

// Mastery returns a summoner's mastery pages.
func (c *Client) Mastery(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "mastery"})
}

// Leagues returns the leagues a summoner is placed in.
func (c *Client) Leagues(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "leagues"})
}

// Honor returns a summoner's honor totals.
func (c *Client) Honor(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "honor"})
}

// Teams returns the teams a summoner belongs to.
func (c *Client) Teams(ctx context.Context, platform, summoner string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "teams"})
}

// RankedStats returns a summoner's ranked statistics. An empty season
// means the current one.
func (c *Client) RankedStats(ctx context.Context, platform, summoner, season string) (*Response, error) {
	sn := ""
	if season != "" {
		sn = "/" + season
	}
	return c.get(ctx, intent{platform: platform, summoner: summoner, subpath: "ranked_stats", season: sn})
}

// Team looks a team up by tag.
func (c *Client) Team(ctx context.Context, platform, tag string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, tag: tag, subpath: "tag"})
}

// TeamLeagues returns the leagues of the team identified by guid.
func (c *Client) TeamLeagues(ctx context.Context, platform, guid string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, guid: guid, subpath: "guid"})
}

// FreeWeek returns the platform's current free champion rotation.
func (c *Client) FreeWeek(ctx context.Context, platform string) (*Response, error) {
	return c.get(ctx, intent{platform: platform, subpath: "free_week"})
}
