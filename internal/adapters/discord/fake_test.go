package discord

import (
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/ports"
)

// fakeClient implements ports.Client with per-method hooks. Unconfigured
// methods fail loudly so each test exercises only the calls it expects.
type fakeClient struct {
	userGuildsFn                func(limit int, beforeID, afterID string, withCounts bool) ([]*discordgo.UserGuild, error)
	guildFn                     func(guildID string) (*discordgo.Guild, error)
	guildChannelsFn             func(guildID string) ([]*discordgo.Channel, error)
	guildRolesFn                func(guildID string) ([]*discordgo.Role, error)
	guildMembersFn              func(guildID, after string, limit int) ([]*discordgo.Member, error)
	guildBansFn                 func(guildID string, limit int, beforeID, afterID string) ([]*discordgo.GuildBan, error)
	guildInvitesFn              func(guildID string) ([]*discordgo.Invite, error)
	userFn                      func(userID string) (*discordgo.User, error)
	channelMessagesFn           func(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error)
	channelMessageFn            func(channelID, messageID string) (*discordgo.Message, error)
	channelFn                   func(channelID string) (*discordgo.Channel, error)
	channelMessageSendFn        func(channelID, content string) (*discordgo.Message, error)
	channelMessageDeleteFn      func(channelID, messageID string) error
	channelMessagesBulkDeleteFn func(channelID string, messages []string) error
	channelMessagePinFn         func(channelID, messageID string) error
	channelMessageUnpinFn       func(channelID, messageID string) error
	messageReactionAddFn        func(channelID, messageID, emojiID string) error
	messageReactionRemoveFn     func(channelID, messageID, emojiID, userID string) error
	guildChannelCreateFn        func(guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)
	channelEditFn               func(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error)
	channelDeleteFn             func(channelID string) (*discordgo.Channel, error)
	channelInviteCreateFn       func(channelID string, i discordgo.Invite) (*discordgo.Invite, error)
	guildRoleCreateFn           func(guildID string, data *discordgo.RoleParams) (*discordgo.Role, error)
	guildRoleEditFn             func(guildID, roleID string, data *discordgo.RoleParams) (*discordgo.Role, error)
	guildRoleDeleteFn           func(guildID, roleID string) error
	guildMemberRoleAddFn        func(guildID, userID, roleID string) error
	guildMemberRoleRemoveFn     func(guildID, userID, roleID string) error
	guildMemberDeleteFn         func(guildID, userID, reason string) error
	guildBanCreateFn            func(guildID, userID, reason string, days int) error
	guildBanDeleteFn            func(guildID, userID string) error
	guildMemberTimeoutFn        func(guildID, userID string, until *time.Time) error
}

var _ ports.Client = (*fakeClient)(nil)

func errUnexpected(method string) error {
	return errors.New("unexpected platform call: " + method)
}

func (f *fakeClient) UserGuilds(limit int, beforeID, afterID string, withCounts bool, _ ...discordgo.RequestOption) ([]*discordgo.UserGuild, error) {
	if f.userGuildsFn == nil {
		return nil, errUnexpected("UserGuilds")
	}
	return f.userGuildsFn(limit, beforeID, afterID, withCounts)
}

func (f *fakeClient) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if f.guildFn == nil {
		return nil, errUnexpected("Guild")
	}
	return f.guildFn(guildID)
}

func (f *fakeClient) GuildChannels(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	if f.guildChannelsFn == nil {
		return nil, errUnexpected("GuildChannels")
	}
	return f.guildChannelsFn(guildID)
}

func (f *fakeClient) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	if f.guildRolesFn == nil {
		return nil, errUnexpected("GuildRoles")
	}
	return f.guildRolesFn(guildID)
}

func (f *fakeClient) GuildMembers(guildID, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	if f.guildMembersFn == nil {
		return nil, errUnexpected("GuildMembers")
	}
	return f.guildMembersFn(guildID, after, limit)
}

func (f *fakeClient) GuildBans(guildID string, limit int, beforeID, afterID string, _ ...discordgo.RequestOption) ([]*discordgo.GuildBan, error) {
	if f.guildBansFn == nil {
		return nil, errUnexpected("GuildBans")
	}
	return f.guildBansFn(guildID, limit, beforeID, afterID)
}

func (f *fakeClient) GuildInvites(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Invite, error) {
	if f.guildInvitesFn == nil {
		return nil, errUnexpected("GuildInvites")
	}
	return f.guildInvitesFn(guildID)
}

func (f *fakeClient) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	if f.userFn == nil {
		return nil, errUnexpected("User")
	}
	return f.userFn(userID)
}

func (f *fakeClient) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if f.channelMessagesFn == nil {
		return nil, errUnexpected("ChannelMessages")
	}
	return f.channelMessagesFn(channelID, limit, beforeID, afterID, aroundID)
}

func (f *fakeClient) ChannelMessage(channelID, messageID string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.channelMessageFn == nil {
		return nil, errUnexpected("ChannelMessage")
	}
	return f.channelMessageFn(channelID, messageID)
}

func (f *fakeClient) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelFn == nil {
		return nil, errUnexpected("Channel")
	}
	return f.channelFn(channelID)
}

func (f *fakeClient) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.channelMessageSendFn == nil {
		return nil, errUnexpected("ChannelMessageSend")
	}
	return f.channelMessageSendFn(channelID, content)
}

func (f *fakeClient) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	if f.channelMessageDeleteFn == nil {
		return errUnexpected("ChannelMessageDelete")
	}
	return f.channelMessageDeleteFn(channelID, messageID)
}

func (f *fakeClient) ChannelMessagesBulkDelete(channelID string, messages []string, _ ...discordgo.RequestOption) error {
	if f.channelMessagesBulkDeleteFn == nil {
		return errUnexpected("ChannelMessagesBulkDelete")
	}
	return f.channelMessagesBulkDeleteFn(channelID, messages)
}

func (f *fakeClient) ChannelMessagePin(channelID, messageID string, _ ...discordgo.RequestOption) error {
	if f.channelMessagePinFn == nil {
		return errUnexpected("ChannelMessagePin")
	}
	return f.channelMessagePinFn(channelID, messageID)
}

func (f *fakeClient) ChannelMessageUnpin(channelID, messageID string, _ ...discordgo.RequestOption) error {
	if f.channelMessageUnpinFn == nil {
		return errUnexpected("ChannelMessageUnpin")
	}
	return f.channelMessageUnpinFn(channelID, messageID)
}

func (f *fakeClient) MessageReactionAdd(channelID, messageID, emojiID string, _ ...discordgo.RequestOption) error {
	if f.messageReactionAddFn == nil {
		return errUnexpected("MessageReactionAdd")
	}
	return f.messageReactionAddFn(channelID, messageID, emojiID)
}

func (f *fakeClient) MessageReactionRemove(channelID, messageID, emojiID, userID string, _ ...discordgo.RequestOption) error {
	if f.messageReactionRemoveFn == nil {
		return errUnexpected("MessageReactionRemove")
	}
	return f.messageReactionRemoveFn(channelID, messageID, emojiID, userID)
}

func (f *fakeClient) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.guildChannelCreateFn == nil {
		return nil, errUnexpected("GuildChannelCreateComplex")
	}
	return f.guildChannelCreateFn(guildID, data)
}

func (f *fakeClient) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelEditFn == nil {
		return nil, errUnexpected("ChannelEdit")
	}
	return f.channelEditFn(channelID, data)
}

func (f *fakeClient) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelDeleteFn == nil {
		return nil, errUnexpected("ChannelDelete")
	}
	return f.channelDeleteFn(channelID)
}

func (f *fakeClient) ChannelInviteCreate(channelID string, i discordgo.Invite, _ ...discordgo.RequestOption) (*discordgo.Invite, error) {
	if f.channelInviteCreateFn == nil {
		return nil, errUnexpected("ChannelInviteCreate")
	}
	return f.channelInviteCreateFn(channelID, i)
}

func (f *fakeClient) GuildRoleCreate(guildID string, data *discordgo.RoleParams, _ ...discordgo.RequestOption) (*discordgo.Role, error) {
	if f.guildRoleCreateFn == nil {
		return nil, errUnexpected("GuildRoleCreate")
	}
	return f.guildRoleCreateFn(guildID, data)
}

func (f *fakeClient) GuildRoleEdit(guildID, roleID string, data *discordgo.RoleParams, _ ...discordgo.RequestOption) (*discordgo.Role, error) {
	if f.guildRoleEditFn == nil {
		return nil, errUnexpected("GuildRoleEdit")
	}
	return f.guildRoleEditFn(guildID, roleID, data)
}

func (f *fakeClient) GuildRoleDelete(guildID, roleID string, _ ...discordgo.RequestOption) error {
	if f.guildRoleDeleteFn == nil {
		return errUnexpected("GuildRoleDelete")
	}
	return f.guildRoleDeleteFn(guildID, roleID)
}

func (f *fakeClient) GuildMemberRoleAdd(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	if f.guildMemberRoleAddFn == nil {
		return errUnexpected("GuildMemberRoleAdd")
	}
	return f.guildMemberRoleAddFn(guildID, userID, roleID)
}

func (f *fakeClient) GuildMemberRoleRemove(guildID, userID, roleID string, _ ...discordgo.RequestOption) error {
	if f.guildMemberRoleRemoveFn == nil {
		return errUnexpected("GuildMemberRoleRemove")
	}
	return f.guildMemberRoleRemoveFn(guildID, userID, roleID)
}

func (f *fakeClient) GuildMemberDeleteWithReason(guildID, userID, reason string, _ ...discordgo.RequestOption) error {
	if f.guildMemberDeleteFn == nil {
		return errUnexpected("GuildMemberDeleteWithReason")
	}
	return f.guildMemberDeleteFn(guildID, userID, reason)
}

func (f *fakeClient) GuildBanCreateWithReason(guildID, userID, reason string, days int, _ ...discordgo.RequestOption) error {
	if f.guildBanCreateFn == nil {
		return errUnexpected("GuildBanCreateWithReason")
	}
	return f.guildBanCreateFn(guildID, userID, reason, days)
}

func (f *fakeClient) GuildBanDelete(guildID, userID string, _ ...discordgo.RequestOption) error {
	if f.guildBanDeleteFn == nil {
		return errUnexpected("GuildBanDelete")
	}
	return f.guildBanDeleteFn(guildID, userID)
}

func (f *fakeClient) GuildMemberTimeout(guildID, userID string, until *time.Time, _ ...discordgo.RequestOption) error {
	if f.guildMemberTimeoutFn == nil {
		return errUnexpected("GuildMemberTimeout")
	}
	return f.guildMemberTimeoutFn(guildID, userID, until)
}
