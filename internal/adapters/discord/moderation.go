package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/concord/pkg/domain"
	"github.com/aretw0/concord/pkg/ports"
)

// BulkDeleteResult is the bulk_delete_messages payload. On partial failure
// it also appears as the progress of the reported error.
type BulkDeleteResult struct {
	ChannelID string `json:"channel_id"`
	Requested int    `json:"requested"`
	Deleted   int    `json:"deleted"`
	Batches   int    `json:"batches"`
}

// BulkDeleteMessages deletes a set of messages, splitting the request into
// sequential batches of at most the platform's per-call maximum. A batch
// that fails stops the loop; earlier batches stay deleted and the result
// reports the aggregate count so far.
func (a *Adapter) BulkDeleteMessages(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID  string   `mapstructure:"channel_id"`
		MessageIDs []string `mapstructure:"message_ids"`
		Reason     string   `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}

	result := BulkDeleteResult{ChannelID: p.ChannelID, Requested: len(p.MessageIDs)}
	for start := 0; start < len(p.MessageIDs); start += bulkDeleteMax {
		end := start + bulkDeleteMax
		if end > len(p.MessageIDs) {
			end = len(p.MessageIDs)
		}
		batch := p.MessageIDs[start:end]

		err := a.withRateLimitRetry(func() error {
			opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
			// The platform rejects bulk requests with fewer than two ids.
			if len(batch) == 1 {
				return client.ChannelMessageDelete(p.ChannelID, batch[0], opts...)
			}
			return client.ChannelMessagesBulkDelete(p.ChannelID, batch, opts...)
		})
		if err != nil {
			if result.Deleted == 0 {
				return nil, err
			}
			return nil, &domain.PartialError{Progress: result, Cause: err}
		}
		result.Deleted += len(batch)
		result.Batches++
	}
	return result, nil
}

// Moderation actions accepted by moderate_message.
const (
	ModerateActionDelete  = "delete"
	ModerateActionTimeout = "timeout"
)

// ModerateMessageResult is the moderate_message payload. On partial
// failure (message deleted but author timeout failed) it also appears as
// the progress of the reported error.
type ModerateMessageResult struct {
	ChannelID      string `json:"channel_id"`
	MessageID      string `json:"message_id"`
	AuthorID       string `json:"author_id,omitempty"`
	Deleted        bool   `json:"deleted"`
	TimedOut       bool   `json:"timed_out"`
	TimeoutMinutes int    `json:"timeout_minutes,omitempty"`
}

// ModerateMessage deletes a message and, for action=timeout, also times
// out its author. The two platform calls are strictly sequential; a
// timeout failure after a successful delete is reported as partial
// success, never rolled back.
func (a *Adapter) ModerateMessage(ctx context.Context, client ports.Client, args map[string]any) (any, error) {
	var p struct {
		ChannelID       string `mapstructure:"channel_id"`
		MessageID       string `mapstructure:"message_id"`
		Action          string `mapstructure:"action"`
		TimeoutDuration int    `mapstructure:"timeout_duration"`
		Reason          string `mapstructure:"reason"`
	}
	if err := decode(args, &p); err != nil {
		return nil, err
	}
	if p.Action == ModerateActionTimeout && p.TimeoutDuration <= 0 {
		return nil, domain.NewError(domain.KindValidation,
			"timeout_duration is required when action is %q", ModerateActionTimeout)
	}

	result := ModerateMessageResult{ChannelID: p.ChannelID, MessageID: p.MessageID}

	// The author and owning server are only discoverable while the message
	// still exists, so resolve them before deleting.
	var authorID, guildID string
	if p.Action == ModerateActionTimeout {
		msg, err := client.ChannelMessage(p.ChannelID, p.MessageID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if msg.Author == nil {
			return nil, domain.NewError(domain.KindNotFound,
				"message %s has no resolvable author to time out", p.MessageID)
		}
		authorID = msg.Author.ID
		guildID = msg.GuildID
		if guildID == "" {
			ch, err := client.Channel(p.ChannelID, discordgo.WithContext(ctx))
			if err != nil {
				return nil, err
			}
			guildID = ch.GuildID
		}
		result.AuthorID = authorID
	}

	opts := append(auditReason(p.Reason), discordgo.WithContext(ctx))
	if err := client.ChannelMessageDelete(p.ChannelID, p.MessageID, opts...); err != nil {
		return nil, err
	}
	result.Deleted = true

	if p.Action == ModerateActionTimeout {
		until := time.Now().UTC().Add(time.Duration(p.TimeoutDuration) * time.Minute)
		if err := client.GuildMemberTimeout(guildID, authorID, &until, opts...); err != nil {
			return nil, &domain.PartialError{Progress: result, Cause: err}
		}
		result.TimedOut = true
		result.TimeoutMinutes = p.TimeoutDuration
	}
	return result, nil
}
