package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/ports"
)

// ServerSummary is one entry in a list_servers result.
type ServerSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count,omitempty"`
	Owner       bool   `json:"owner,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// ListServersResult is the list_servers payload.
type ListServersResult struct {
	Servers []ServerSummary `json:"servers"`
	Count   int             `json:"count"`
}

// ListServers returns every server the session's bot account is in,
// following the pagination cursor until the platform signals completion.
func (a *Adapter) ListServers(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var servers []ServerSummary
	after := ""
	for {
		page, err := client.UserGuilds(guildsPageSize, "", after, true, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, g := range page {
			servers = append(servers, ServerSummary{
				ID:          g.ID,
				Name:        g.Name,
				MemberCount: g.ApproximateMemberCount,
				Owner:       g.Owner,
				Default:     g.ID == a.DefaultGuildID,
			})
		}
		if len(page) < guildsPageSize {
			break
		}
		after = page[len(page)-1].ID
	}
	return ListServersResult{Servers: servers, Count: len(servers)}, nil
}

// ServerInfo is the get_server_info payload.
type ServerInfo struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	OwnerID           string   `json:"owner_id"`
	MemberCount       int      `json:"member_count"`
	CreatedAt         string   `json:"created_at,omitempty"`
	VerificationLevel int      `json:"verification_level"`
	BoostTier         int      `json:"boost_tier"`
	BoostCount        int      `json:"boost_count"`
	Features          []string `json:"features,omitempty"`
}

// GetServerInfo fetches detailed information about one server.
func (a *Adapter) GetServerInfo(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID string `mapstructure:"server_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	g, err := client.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	features := make([]string, 0, len(g.Features))
	for _, f := range g.Features {
		features = append(features, string(f))
	}

	return ServerInfo{
		ID:                g.ID,
		Name:              g.Name,
		Description:       g.Description,
		OwnerID:           g.OwnerID,
		MemberCount:       g.MemberCount,
		CreatedAt:         snowflakeTime(g.ID),
		VerificationLevel: int(g.VerificationLevel),
		BoostTier:         int(g.PremiumTier),
		BoostCount:        g.PremiumSubscriptionCount,
		Features:          features,
	}, nil
}

// UserInfo is the get_user_info payload.
type UserInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Bot         bool   `json:"bot"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// GetUserInfo fetches one user by id.
func (a *Adapter) GetUserInfo(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		UserID string `mapstructure:"user_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	u, err := client.User(p.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.GlobalName,
		Bot:         u.Bot,
		CreatedAt:   snowflakeTime(u.ID),
	}, nil
}

// snowflakeTime renders the creation timestamp a snowflake encodes.
// Malformed ids render as empty rather than failing the whole payload.
func snowflakeTime(id string) string {
	ts, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
