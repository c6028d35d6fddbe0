package internal

import (
	"context"

	"github.com/KenanY/teemo-core/teemo"
)

// StatsAPI is the slice of the client library the handlers depend on.
type StatsAPI interface {
	Player(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	InGame(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	RecentGames(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	InfluencePoints(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	Runes(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	Mastery(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	Leagues(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	Honor(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	Teams(ctx context.Context, platform, summoner string) (*teemo.Response, error)
	RankedStats(ctx context.Context, platform, summoner, season string) (*teemo.Response, error)
	Team(ctx context.Context, platform, tag string) (*teemo.Response, error)
	TeamLeagues(ctx context.Context, platform, guid string) (*teemo.Response, error)
	FreeWeek(ctx context.Context, platform string) (*teemo.Response, error)
}

type RateLimiterInterface interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LookupRecorder receives one event per served lookup.
type LookupRecorder interface {
	Record(event LookupEvent)
}

type AuditStore interface {
	RecordLookup(event LookupEvent) error
	GetLookupStats() (*LookupStats, error)
	Close()
}
