package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/ports"
)

// ChannelInfo is the channel payload shared by channel reads and writes.
type ChannelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Topic    string `json:"topic,omitempty"`
	ParentID string `json:"category_id,omitempty"`
	Position int    `json:"position"`
	NSFW     bool   `json:"nsfw,omitempty"`
}

// ListChannelsResult is the list_channels payload.
type ListChannelsResult struct {
	ServerID string        `json:"server_id"`
	Channels []ChannelInfo `json:"channels"`
	Count    int           `json:"count"`
}

func channelInfo(c *discordgo.Channel) ChannelInfo {
	return ChannelInfo{
		ID:       c.ID,
		Name:     c.Name,
		Type:     channelTypeName(c.Type),
		Topic:    c.Topic,
		ParentID: c.ParentID,
		Position: c.Position,
		NSFW:     c.NSFW,
	}
}

func channelTypeName(t discordgo.ChannelType) string {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return "text"
	case discordgo.ChannelTypeGuildVoice:
		return "voice"
	case discordgo.ChannelTypeGuildCategory:
		return "category"
	case discordgo.ChannelTypeGuildNews:
		return "announcement"
	case discordgo.ChannelTypeGuildForum:
		return "forum"
	case discordgo.ChannelTypeGuildStageVoice:
		return "stage"
	default:
		return "other"
	}
}

func channelTypeFromName(name string) discordgo.ChannelType {
	switch name {
	case "voice":
		return discordgo.ChannelTypeGuildVoice
	case "category":
		return discordgo.ChannelTypeGuildCategory
	case "announcement":
		return discordgo.ChannelTypeGuildNews
	default:
		return discordgo.ChannelTypeGuildText
	}
}

// ListChannels lists every channel in a server.
func (a *Adapter) ListChannels(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
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

	channels, err := client.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]ChannelInfo, 0, len(channels))
	for _, c := range channels {
		out = append(out, channelInfo(c))
	}
	return ListChannelsResult{ServerID: guildID, Channels: out, Count: len(out)}, nil
}

// CreateChannel creates a text, voice, category or announcement channel.
func (a *Adapter) CreateChannel(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID   string `mapstructure:"server_id"`
		Name       string `mapstructure:"name"`
		Type       string `mapstructure:"type"`
		Topic      string `mapstructure:"topic"`
		CategoryID string `mapstructure:"category_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	c, err := client.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     p.Name,
		Type:     channelTypeFromName(p.Type),
		Topic:    p.Topic,
		ParentID: p.CategoryID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return channelInfo(c), nil
}

// UpdateChannel edits channel properties. Only supplied fields change.
func (a *Adapter) UpdateChannel(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string  `mapstructure:"channel_id"`
		Name      *string `mapstructure:"name"`
		Topic     *string `mapstructure:"topic"`
		Position  *int    `mapstructure:"position"`
		NSFW      *bool   `mapstructure:"nsfw"`
		Slowmode  *int    `mapstructure:"slowmode_seconds"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	edit := &discordgo.ChannelEdit{
		Position:         p.Position,
		NSFW:             p.NSFW,
		RateLimitPerUser: p.Slowmode,
	}
	if p.Name != nil {
		edit.Name = *p.Name
	}
	if p.Topic != nil {
		edit.Topic = *p.Topic
	}

	c, err := client.ChannelEdit(p.ChannelID, edit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return channelInfo(c), nil
}

// DeleteChannelResult is the delete_channel payload.
type DeleteChannelResult struct {
	ChannelID string `json:"channel_id"`
	Name      string `json:"name,omitempty"`
	Deleted   bool   `json:"deleted"`
}

// DeleteChannel deletes a channel.
func (a *Adapter) DeleteChannel(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		Reason    string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	c, err := client.ChannelDelete(p.ChannelID, opts...)
	if err != nil {
		return nil, err
	}
	return DeleteChannelResult{ChannelID: c.ID, Name: c.Name, Deleted: true}, nil
}

// InviteInfo is the invite payload shared by create_invite and list_invites.
type InviteInfo struct {
	Code      string `json:"code"`
	ChannelID string `json:"channel_id,omitempty"`
	InviterID string `json:"inviter_id,omitempty"`
	Uses      int    `json:"uses"`
	MaxUses   int    `json:"max_uses"`
	MaxAge    int    `json:"max_age_seconds"`
	Temporary bool   `json:"temporary,omitempty"`
}

func inviteInfo(inv *discordgo.Invite) InviteInfo {
	info := InviteInfo{
		Code:      inv.Code,
		Uses:      inv.Uses,
		MaxUses:   inv.MaxUses,
		MaxAge:    inv.MaxAge,
		Temporary: inv.Temporary,
	}
	if inv.Channel != nil {
		info.ChannelID = inv.Channel.ID
	}
	if inv.Inviter != nil {
		info.InviterID = inv.Inviter.ID
	}
	return info
}

// CreateInvite creates an invite link for a channel.
func (a *Adapter) CreateInvite(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MaxAge    int    `mapstructure:"max_age_seconds"`
		MaxUses   int    `mapstructure:"max_uses"`
		Temporary bool   `mapstructure:"temporary"`
		Unique    bool   `mapstructure:"unique"`
		Reason    string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	inv, err := client.ChannelInviteCreate(p.ChannelID, discordgo.Invite{
		MaxAge:    p.MaxAge,
		MaxUses:   p.MaxUses,
		Temporary: p.Temporary,
		Unique:    p.Unique,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return inviteInfo(inv), nil
}

// ListInvitesResult is the list_invites payload.
type ListInvitesResult struct {
	ServerID string       `json:"server_id"`
	Invites  []InviteInfo `json:"invites"`
	Count    int          `json:"count"`
}

// ListInvites lists active invites for a server.
func (a *Adapter) ListInvites(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
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

	invites, err := client.GuildInvites(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]InviteInfo, 0, len(invites))
	for _, inv := range invites {
		out = append(out, inviteInfo(inv))
	}
	return ListInvitesResult{ServerID: guildID, Invites: out, Count: len(out)}, nil
}
