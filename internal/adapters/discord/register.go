package discord

import (
	"fmt"

	"github.com/aretw0/concord/pkg/registry"
	"github.com/aretw0/concord/pkg/schema"
)

// Shorthand for the fields nearly every tool carries. server_id is
// optional on guild-scoped tools: a configured default server fills in.
func serverIDField() schema.Field {
	return schema.Field{Name: "server_id", Type: schema.Snowflake(),
		Description: "Server (guild) id; optional when a default server is configured"}
}

func channelIDField() schema.Field {
	return schema.Field{Name: "channel_id", Type: schema.Snowflake(), Required: true,
		Description: "Channel id"}
}

func messageIDField() schema.Field {
	return schema.Field{Name: "message_id", Type: schema.Snowflake(), Required: true,
		Description: "Message id"}
}

func userIDField() schema.Field {
	return schema.Field{Name: "user_id", Type: schema.Snowflake(), Required: true,
		Description: "User id"}
}

func roleIDField() schema.Field {
	return schema.Field{Name: "role_id", Type: schema.Snowflake(), Required: true,
		Description: "Role id"}
}

func reasonField() schema.Field {
	return schema.Field{Name: "reason", Type: schema.String(),
		Description: "Audit log reason"}
}

// RegisterAll populates the registry with every tool this adapter
// implements. Called once at startup; the registry is read-only after.
func (a *Adapter) RegisterAll(reg *registry.Registry) error {
	specs := []registry.ToolSpec{
		// Reads.
		{
			Name:        "list_servers",
			Description: "List every Discord server the bot is a member of",
			Handler:     a.ListServers,
		},
		{
			Name:        "get_server_info",
			Description: "Get detailed information about a Discord server",
			Params:      schema.Schema{serverIDField()},
			Handler:     a.GetServerInfo,
		},
		{
			Name:        "list_channels",
			Description: "List all channels in a Discord server",
			Params:      schema.Schema{serverIDField()},
			Handler:     a.ListChannels,
		},
		{
			Name:        "list_roles",
			Description: "List all roles in a Discord server",
			Params:      schema.Schema{serverIDField()},
			Handler:     a.ListRoles,
		},
		{
			Name:        "list_members",
			Description: "List members of a Discord server",
			Params: schema.Schema{
				serverIDField(),
				{Name: "limit", Type: schema.IntRange(1, 1000),
					Description: "Maximum members to return (default 25)"},
				{Name: "include_bots", Type: schema.Bool(),
					Description: "Include bot accounts (default true)"},
			},
			Handler: a.ListMembers,
		},
		{
			Name:        "list_bans",
			Description: "List banned users for a Discord server",
			Params: schema.Schema{
				serverIDField(),
				{Name: "limit", Type: schema.IntRange(1, 10000),
					Description: "Maximum bans to return (default: all)"},
			},
			Handler: a.ListBans,
		},
		{
			Name:        "list_invites",
			Description: "List active invites for a Discord server",
			Params:      schema.Schema{serverIDField()},
			Handler:     a.ListInvites,
		},
		{
			Name:        "get_user_info",
			Description: "Get information about a Discord user",
			Params:      schema.Schema{userIDField()},
			Handler:     a.GetUserInfo,
		},
		{
			Name:        "read_messages",
			Description: "Read recent messages from a channel, oldest first",
			Params: schema.Schema{
				channelIDField(),
				{Name: "limit", Type: schema.IntRange(1, maxReadLimit),
					Description: "Maximum messages to return (default 20)"},
			},
			Handler: a.ReadMessages,
		},

		// Message writes.
		{
			Name:        "send_message",
			Description: "Send a message to a channel",
			Params: schema.Schema{
				channelIDField(),
				{Name: "content", Type: schema.String(), Required: true,
					Description: "Message content"},
			},
			Handler: a.SendMessage,
		},
		{
			Name:        "delete_message",
			Description: "Delete a single message",
			Params:      schema.Schema{channelIDField(), messageIDField(), reasonField()},
			Handler:     a.DeleteMessage,
		},
		{
			Name:        "pin_message",
			Description: "Pin a message to its channel",
			Params:      schema.Schema{channelIDField(), messageIDField()},
			Handler:     a.PinMessage,
		},
		{
			Name:        "unpin_message",
			Description: "Unpin a message from its channel",
			Params:      schema.Schema{channelIDField(), messageIDField()},
			Handler:     a.UnpinMessage,
		},
		{
			Name:        "add_reaction",
			Description: "Add a reaction to a message",
			Params: schema.Schema{
				channelIDField(),
				messageIDField(),
				{Name: "emoji", Type: schema.String(), Required: true,
					Description: "Emoji (unicode or name:id for custom)"},
			},
			Handler: a.AddReaction,
		},
		{
			Name:        "remove_reaction",
			Description: "Remove the bot's reaction from a message",
			Params: schema.Schema{
				channelIDField(),
				messageIDField(),
				{Name: "emoji", Type: schema.String(), Required: true,
					Description: "Emoji (unicode or name:id for custom)"},
			},
			Handler: a.RemoveReaction,
		},
		{
			Name:        "add_multiple_reactions",
			Description: "Add several reactions to a message in order, reporting partial success",
			Params: schema.Schema{
				channelIDField(),
				messageIDField(),
				{Name: "emojis", Type: schema.Slice(schema.String()), Required: true,
					Description: "Emojis to add, applied in this order"},
			},
			Handler: a.AddMultipleReactions,
		},
		{
			Name:        "bulk_delete_messages",
			Description: "Delete many messages, batching at the platform per-call maximum",
			Params: schema.Schema{
				channelIDField(),
				{Name: "message_ids", Type: schema.Slice(schema.Snowflake()), Required: true,
					Description: "Ids of the messages to delete"},
				reasonField(),
			},
			Handler: a.BulkDeleteMessages,
		},

		// Channel writes.
		{
			Name:        "create_channel",
			Description: "Create a channel in a server",
			Params: schema.Schema{
				serverIDField(),
				{Name: "name", Type: schema.String(), Required: true,
					Description: "Channel name"},
				{Name: "type", Type: schema.Enum("text", "voice", "category", "announcement"),
					Description: "Channel type (default text)"},
				{Name: "topic", Type: schema.String(), Description: "Channel topic"},
				{Name: "category_id", Type: schema.Snowflake(),
					Description: "Category to place the channel under"},
			},
			Handler: a.CreateChannel,
		},
		{
			Name:        "update_channel",
			Description: "Edit channel properties; only supplied fields change",
			Params: schema.Schema{
				channelIDField(),
				{Name: "name", Type: schema.String(), Description: "New name"},
				{Name: "topic", Type: schema.String(), Description: "New topic"},
				{Name: "position", Type: schema.Int(), Description: "New position"},
				{Name: "nsfw", Type: schema.Bool(), Description: "Age-restricted flag"},
				{Name: "slowmode_seconds", Type: schema.IntRange(0, 21600),
					Description: "Slowmode delay in seconds"},
			},
			Handler: a.UpdateChannel,
		},
		{
			Name:        "delete_channel",
			Description: "Delete a channel",
			Params:      schema.Schema{channelIDField(), reasonField()},
			Handler:     a.DeleteChannel,
		},
		{
			Name:        "create_invite",
			Description: "Create an invite link for a channel",
			Params: schema.Schema{
				channelIDField(),
				{Name: "max_age_seconds", Type: schema.IntRange(0, 604800),
					Description: "Invite lifetime in seconds (0 = never expires)"},
				{Name: "max_uses", Type: schema.IntRange(0, 100),
					Description: "Maximum uses (0 = unlimited)"},
				{Name: "temporary", Type: schema.Bool(),
					Description: "Grant temporary membership"},
				{Name: "unique", Type: schema.Bool(),
					Description: "Always create a new invite"},
				reasonField(),
			},
			Handler: a.CreateInvite,
		},

		// Role writes.
		{
			Name:        "create_role",
			Description: "Create a role in a server",
			Params: schema.Schema{
				serverIDField(),
				{Name: "name", Type: schema.String(), Required: true,
					Description: "Role name"},
				{Name: "color", Type: schema.IntRange(0, 0xFFFFFF),
					Description: "Role color as an RGB integer"},
				{Name: "hoist", Type: schema.Bool(),
					Description: "Display role members separately"},
				{Name: "mentionable", Type: schema.Bool(),
					Description: "Role can be mentioned"},
				reasonField(),
			},
			Handler: a.CreateRole,
		},
		{
			Name:        "update_role",
			Description: "Edit a role; only supplied fields change",
			Params: schema.Schema{
				serverIDField(),
				roleIDField(),
				{Name: "name", Type: schema.String(), Description: "New name"},
				{Name: "color", Type: schema.IntRange(0, 0xFFFFFF),
					Description: "New color as an RGB integer"},
				{Name: "hoist", Type: schema.Bool(),
					Description: "Display role members separately"},
				{Name: "mentionable", Type: schema.Bool(),
					Description: "Role can be mentioned"},
				reasonField(),
			},
			Handler: a.UpdateRole,
		},
		{
			Name:        "delete_role",
			Description: "Delete a role from a server",
			Params:      schema.Schema{serverIDField(), roleIDField()},
			Handler:     a.DeleteRole,
		},
		{
			Name:        "add_role",
			Description: "Grant a role to a member",
			Params:      schema.Schema{serverIDField(), userIDField(), roleIDField()},
			Handler:     a.AddRole,
		},
		{
			Name:        "remove_role",
			Description: "Revoke a role from a member",
			Params:      schema.Schema{serverIDField(), userIDField(), roleIDField()},
			Handler:     a.RemoveRole,
		},

		// Member moderation.
		{
			Name:        "kick_member",
			Description: "Kick a member from a server",
			Params:      schema.Schema{serverIDField(), userIDField(), reasonField()},
			Handler:     a.KickMember,
		},
		{
			Name:        "ban_member",
			Description: "Ban a member, optionally pruning their recent messages",
			Params: schema.Schema{
				serverIDField(),
				userIDField(),
				{Name: "delete_message_days", Type: schema.IntRange(0, maxDeleteDays),
					Description: "Days of the member's messages to delete (0-7)"},
				reasonField(),
			},
			Handler: a.BanMember,
		},
		{
			Name:        "unban_member",
			Description: "Lift a member's ban",
			Params:      schema.Schema{serverIDField(), userIDField()},
			Handler:     a.UnbanMember,
		},
		{
			Name:        "timeout_member",
			Description: "Time a member out for a bounded duration",
			Params: schema.Schema{
				serverIDField(),
				userIDField(),
				{Name: "duration_minutes", Type: schema.IntRange(1, maxTimeoutMinutes), Required: true,
					Description: "Timeout length in minutes (max 28 days)"},
				reasonField(),
			},
			Handler: a.TimeoutMember,
		},
		{
			Name:        "moderate_message",
			Description: "Delete a message and optionally time out its author",
			Params: schema.Schema{
				channelIDField(),
				messageIDField(),
				{Name: "action", Type: schema.Enum(ModerateActionDelete, ModerateActionTimeout), Required: true,
					Description: "delete removes the message; timeout also times out the author"},
				{Name: "timeout_duration", Type: schema.IntRange(1, maxTimeoutMinutes),
					Description: "Author timeout in minutes, required for action=timeout"},
				reasonField(),
			},
			Handler: a.ModerateMessage,
		},
	}

	for _, spec := range specs {
		if err := reg.Register(spec); err != nil {
			return fmt.Errorf("register tools: %w", err)
		}
	}
	return nil
}
