package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/ports"
)

// MessageInfo is one message in a read_messages result.
type MessageInfo struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id,omitempty"`
	Author    string `json:"author,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Pinned    bool   `json:"pinned,omitempty"`
}

func messageInfo(m *discordgo.Message) MessageInfo {
	info := MessageInfo{
		ID:        m.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
		Pinned:    m.Pinned,
	}
	if m.Author != nil {
		info.AuthorID = m.Author.ID
		info.Author = m.Author.Username
	}
	return info
}

// SendMessageResult is the send_message payload.
type SendMessageResult struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
}

// SendMessage sends a text message to a channel.
func (a *Adapter) SendMessage(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		Content   string `mapstructure:"content"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, domain.NewError(domain.KindValidation, "message content cannot be empty")
	}

	m, err := client.ChannelMessageSend(p.ChannelID, p.Content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return SendMessageResult{MessageID: m.ID, ChannelID: m.ChannelID}, nil
}

// DeleteMessageResult is the delete_message payload.
type DeleteMessageResult struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Deleted   bool   `json:"deleted"`
}

// DeleteMessage deletes a single message.
func (a *Adapter) DeleteMessage(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MessageID string `mapstructure:"message_id"`
		Reason    string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	if err := client.ChannelMessageDelete(p.ChannelID, p.MessageID, opts...); err != nil {
		return nil, err
	}
	return DeleteMessageResult{ChannelID: p.ChannelID, MessageID: p.MessageID, Deleted: true}, nil
}

// ReadMessagesResult is the read_messages payload. Messages are ordered
// oldest first.
type ReadMessagesResult struct {
	ChannelID string        `json:"channel_id"`
	Messages  []MessageInfo `json:"messages"`
	Count     int           `json:"count"`
}

// ReadMessages reads recent channel history, following the pagination
// cursor until the caller's limit or the start of history is reached.
func (a *Adapter) ReadMessages(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		Limit     int    `mapstructure:"limit"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultReadLimit
	}

	// Newest-first pages keyed on the oldest id seen so far.
	var collected []*discordgo.Message
	before := ""
	for len(collected) < limit {
		pageSize := messagesPageSize
		if remaining := limit - len(collected); remaining < pageSize {
			pageSize = remaining
		}
		page, err := client.ChannelMessages(p.ChannelID, pageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		collected = append(collected, page...)
		if len(page) < pageSize {
			break
		}
		before = page[len(page)-1].ID
	}

	// Chronological order for the caller.
	out := make([]MessageInfo, 0, len(collected))
	for i := len(collected) - 1; i >= 0; i-- {
		out = append(out, messageInfo(collected[i]))
	}
	return ReadMessagesResult{ChannelID: p.ChannelID, Messages: out, Count: len(out)}, nil
}

// PinResult is the pin_message / unpin_message payload.
type PinResult struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Pinned    bool   `json:"pinned"`
}

// PinMessage pins a message to its channel.
func (a *Adapter) PinMessage(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MessageID string `mapstructure:"message_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if err := client.ChannelMessagePin(p.ChannelID, p.MessageID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return PinResult{ChannelID: p.ChannelID, MessageID: p.MessageID, Pinned: true}, nil
}

// UnpinMessage removes a message from its channel's pins.
func (a *Adapter) UnpinMessage(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MessageID string `mapstructure:"message_id"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if err := client.ChannelMessageUnpin(p.ChannelID, p.MessageID, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return PinResult{ChannelID: p.ChannelID, MessageID: p.MessageID, Pinned: false}, nil
}

// ReactionResult is the add_reaction / remove_reaction payload.
type ReactionResult struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
	Added     bool   `json:"added"`
}

// AddReaction adds one reaction to a message.
func (a *Adapter) AddReaction(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MessageID string `mapstructure:"message_id"`
		Emoji     string `mapstructure:"emoji"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if err := client.MessageReactionAdd(p.ChannelID, p.MessageID, p.Emoji, discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return ReactionResult{ChannelID: p.ChannelID, MessageID: p.MessageID, Emoji: p.Emoji, Added: true}, nil
}

// RemoveReaction removes the bot's own reaction from a message.
func (a *Adapter) RemoveReaction(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string `mapstructure:"channel_id"`
		MessageID string `mapstructure:"message_id"`
		Emoji     string `mapstructure:"emoji"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if err := client.MessageReactionRemove(p.ChannelID, p.MessageID, p.Emoji, "@me", discordgo.WithContext(ctx)); err != nil {
		return nil, err
	}
	return ReactionResult{ChannelID: p.ChannelID, MessageID: p.MessageID, Emoji: p.Emoji, Added: false}, nil
}

// ReactionBatchResult is the add_multiple_reactions payload. On partial
// failure it also appears as the progress of the reported error.
type ReactionBatchResult struct {
	ChannelID string   `json:"channel_id"`
	MessageID string   `json:"message_id"`
	Requested int      `json:"requested"`
	Applied   int      `json:"applied"`
	Emojis    []string `json:"emojis_applied"`
}

// AddMultipleReactions adds reactions strictly in the caller-supplied
// order, one platform call per emoji. If emoji k fails, emojis 1..k-1 stay
// applied and the failure is reported with the progress so far.
func (a *Adapter) AddMultipleReactions(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID string   `mapstructure:"channel_id"`
		MessageID string   `mapstructure:"message_id"`
		Emojis    []string `mapstructure:"emojis"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	result := ReactionBatchResult{
		ChannelID: p.ChannelID,
		MessageID: p.MessageID,
		Requested: len(p.Emojis),
		Emojis:    []string{},
	}
	for _, emoji := range p.Emojis {
		err := a.withRateLimitRetry(func() error {
			return client.MessageReactionAdd(p.ChannelID, p.MessageID, emoji, discordgo.WithContext(ctx))
		})
		if err != nil {
			if result.Applied == 0 {
				return nil, err
			}
			return nil, &domain.PartialError{Progress: result, Cause: err}
		}
		result.Applied++
		result.Emojis = append(result.Emojis, emoji)
	}
	return result, nil
}
