package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/ports"
)

// MemberInfo is one entry in a list_members result.
type MemberInfo struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Nick     string   `json:"nick,omitempty"`
	Bot      bool     `json:"bot,omitempty"`
	JoinedAt string   `json:"joined_at,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// ListMembersResult is the list_members payload.
type ListMembersResult struct {
	ServerID string       `json:"server_id"`
	Members  []MemberInfo `json:"members"`
	Count    int          `json:"count"`
}

// ListMembers lists server members, following the pagination cursor until
// the caller's limit or the end of the member list is reached.
func (a *Adapter) ListMembers(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID    string `mapstructure:"server_id"`
		Limit       int    `mapstructure:"limit"`
		IncludeBots *bool  `mapstructure:"include_bots"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultMemberLimit
	}
	includeBots := p.IncludeBots == nil || *p.IncludeBots

	var members []MemberInfo
	after := ""
	for len(members) < limit {
		page, err := client.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			if m.User == nil {
				continue
			}
			if !includeBots && m.User.Bot {
				continue
			}
			info := MemberInfo{
				ID:       m.User.ID,
				Username: m.User.Username,
				Nick:     m.Nick,
				Bot:      m.User.Bot,
				Roles:    m.Roles,
			}
			if !m.JoinedAt.IsZero() {
				info.JoinedAt = m.JoinedAt.UTC().Format(time.RFC3339)
			}
			members = append(members, info)
			if len(members) >= limit {
				break
			}
		}
		if len(page) < membersPageSize {
			break
		}
		last := page[len(page)-1]
		if last.User == nil {
			break
		}
		after = last.User.ID
	}
	return ListMembersResult{ServerID: guildID, Members: members, Count: len(members)}, nil
}

// BanInfo is one entry in a list_bans result.
type BanInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ListBansResult is the list_bans payload.
type ListBansResult struct {
	ServerID string    `json:"server_id"`
	Bans     []BanInfo `json:"bans"`
	Count    int       `json:"count"`
}

// ListBans lists a server's bans, following the pagination cursor until
// the caller's limit or platform completion.
func (a *Adapter) ListBans(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID string `mapstructure:"server_id"`
		Limit    int    `mapstructure:"limit"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	var bans []BanInfo
	after := ""
	for {
		pageSize := bansPageSize
		if p.Limit > 0 {
			if remaining := p.Limit - len(bans); remaining < pageSize {
				pageSize = remaining
			}
		}
		page, err := client.GuildBans(guildID, pageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, b := range page {
			info := BanInfo{Reason: b.Reason}
			if b.User != nil {
				info.UserID = b.User.ID
				info.Username = b.User.Username
			}
			bans = append(bans, info)
		}
		if len(page) < pageSize || (p.Limit > 0 && len(bans) >= p.Limit) {
			break
		}
		last := page[len(page)-1]
		if last.User == nil {
			break
		}
		after = last.User.ID
	}
	return ListBansResult{ServerID: guildID, Bans: bans, Count: len(bans)}, nil
}

// MemberRoleResult is the add_role / remove_role payload.
type MemberRoleResult struct {
	ServerID string `json:"server_id"`
	UserID   string `json:"user_id"`
	RoleID   string `json:"role_id"`
	Added    bool   `json:"added"`
}

type memberRoleParams struct {
	ServerID string `mapstructure:"server_id"`
	UserID   string `mapstructure:"user_id"`
	RoleID   string `mapstructure:"role_id"`
}

// AddRole grants a role to a member.
func (a *Adapter) AddRole(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p memberRoleParams
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildMemberRoleAdd(guildID, p.UserID, p.RoleID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return MemberRoleResult{ServerID: guildID, UserID: p.UserID, RoleID: p.RoleID, Added: true}, nil
}

// RemoveRole revokes a role from a member.
func (a *Adapter) RemoveRole(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p memberRoleParams
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildMemberRoleRemove(guildID, p.UserID, p.RoleID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return MemberRoleResult{ServerID: guildID, UserID: p.UserID, RoleID: p.RoleID, Added: false}, nil
}

// ModerationResult is the payload for kick/ban/unban/timeout operations.
type ModerationResult struct {
	ServerID     string `json:"server_id"`
	UserID       string `json:"user_id"`
	Action       string `json:"action"`
	TimeoutUntil string `json:"timeout_until,omitempty"`
}

// KickMember removes a member from a server.
func (a *Adapter) KickMember(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID string `mapstructure:"server_id"`
		UserID   string `mapstructure:"user_id"`
		Reason   string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildMemberDeleteWithReason(guildID, p.UserID, p.Reason, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return ModerationResult{ServerID: guildID, UserID: p.UserID, Action: "kick"}, nil
}

// BanMember bans a member, optionally pruning their recent messages.
func (a *Adapter) BanMember(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID          string `mapstructure:"server_id"`
		UserID            string `mapstructure:"user_id"`
		DeleteMessageDays int    `mapstructure:"delete_message_days"`
		Reason            string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildBanCreateWithReason(guildID, p.UserID, p.Reason, p.DeleteMessageDays, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return ModerationResult{ServerID: guildID, UserID: p.UserID, Action: "ban"}, nil
}

// UnbanMember lifts a ban.
func (a *Adapter) UnbanMember(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID string `mapstructure:"server_id"`
		UserID   string `mapstructure:"user_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildBanDelete(guildID, p.UserID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return ModerationResult{ServerID: guildID, UserID: p.UserID, Action: "unban"}, nil
}

// TimeoutMember times out a member for a bounded number of minutes.
func (a *Adapter) TimeoutMember(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID        string `mapstructure:"server_id"`
		UserID          string `mapstructure:"user_id"`
		DurationMinutes int    `mapstructure:"duration_minutes"`
		Reason          string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	until := time.Now().UTC().Add(time.Duration(p.DurationMinutes) * time.Minute)
	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	if err := client.GuildMemberTimeout(guildID, p.UserID, &until, opts...); err != nil {
		return nil, err
	}
	return ModerationResult{
		ServerID:     guildID,
		UserID:       p.UserID,
		Action:       "timeout",
		TimeoutUntil: until.Format(time.RFC3339),
	}, nil
}
