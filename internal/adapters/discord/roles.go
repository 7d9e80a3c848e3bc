package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/ports"
)

// RoleInfo is the role payload shared by role reads and writes.
type RoleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Hoist       bool   `json:"hoist,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
}

func roleInfo(r *discordgo.Role) RoleInfo {
	return RoleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Hoist:       r.Hoist,
		Mentionable: r.Mentionable,
		Position:    r.Position,
		Permissions: strconv.FormatInt(r.Permissions, 10),
	}
}

// ListRolesResult is the list_roles payload.
type ListRolesResult struct {
	ServerID string     `json:"server_id"`
	Roles    []RoleInfo `json:"roles"`
	Count    int        `json:"count"`
}

// ListRoles lists every role in a server.
func (a *Adapter) ListRoles(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
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

	roles, err := client.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]RoleInfo, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleInfo(r))
	}
	return ListRolesResult{ServerID: guildID, Roles: out, Count: len(out)}, nil
}

type roleParams struct {
	ServerID    string  `mapstructure:"server_id"`
	RoleID      string  `mapstructure:"role_id"`
	Name        *string `mapstructure:"name"`
	Color       *int    `mapstructure:"color"`
	Hoist       *bool   `mapstructure:"hoist"`
	Mentionable *bool   `mapstructure:"mentionable"`
	Reason      string  `mapstructure:"reason"`
}

func (p *roleParams) toRoleParams() *discordgo.RoleParams {
	out := &discordgo.RoleParams{
		Color:       p.Color,
		Hoist:       p.Hoist,
		Mentionable: p.Mentionable,
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	return out
}

// CreateRole creates a role in a server.
func (a *Adapter) CreateRole(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p roleParams
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	r, err := client.GuildRoleCreate(guildID, p.toRoleParams(), opts...)
	if err != nil {
		return nil, err
	}
	return roleInfo(r), nil
}

// UpdateRole edits a role. Only supplied fields change.
func (a *Adapter) UpdateRole(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p roleParams
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	r, err := client.GuildRoleEdit(guildID, p.RoleID, p.toRoleParams(), opts...)
	if err != nil {
		return nil, err
	}
	return roleInfo(r), nil
}

// DeleteRoleResult is the delete_role payload.
type DeleteRoleResult struct {
	ServerID string `json:"server_id"`
	RoleID   string `json:"role_id"`
	Deleted  bool   `json:"deleted"`
}

// DeleteRole deletes a role from a server.
func (a *Adapter) DeleteRole(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ServerID string `mapstructure:"server_id"`
		RoleID   string `mapstructure:"role_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	guildID, err := a.guildID(p.ServerID)
	if err != nil {
		return nil, err
	}
	if err := client.GuildRoleDelete(guildID, p.RoleID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return DeleteRoleResult{ServerID: guildID, RoleID: p.RoleID, Deleted: true}, nil
}
