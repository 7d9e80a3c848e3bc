package discord

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/concord/pkg/domain"
)

func TestListMembersUsesConfiguredDefaultServer(t *testing.T) {
	adapter := newTestAdapter(WithDefaultGuild("g9"))

	client := &fakeClient{
		guildMembersFn: func(guildID, after string, limit int) ([]*discordgo.Member, error) {
			assert.Equal(t, "g9", guildID)
			return []*discordgo.Member{
				{User: &discordgo.User{ID: "u1", Username: "alice"}},
			}, nil
		},
	}

	out, err := adapter.ListMembers(context.Background(), client, map[string]any{})
	require.NoError(t, err)

	result := out.(ListMembersResult)
	assert.Equal(t, "g9", result.ServerID)
	assert.Equal(t, 1, result.Count)
}

func TestListMembersWithoutServerFailsBeforePlatform(t *testing.T) {
	adapter := newTestAdapter()
	client := &fakeClient{} // any platform call fails the test

	_, err := adapter.ListMembers(context.Background(), client, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, MapError(err).Kind)
}

func TestListMembersExcludesBotsWhenAsked(t *testing.T) {
	adapter := newTestAdapter()

	client := &fakeClient{
		guildMembersFn: func(_, _ string, _ int) ([]*discordgo.Member, error) {
			return []*discordgo.Member{
				{User: &discordgo.User{ID: "u1", Username: "alice"}},
				{User: &discordgo.User{ID: "b1", Username: "helper", Bot: true}},
				{User: &discordgo.User{ID: "u2", Username: "bob"}},
			}, nil
		},
	}

	out, err := adapter.ListMembers(context.Background(), client, map[string]any{
		"server_id":    "g1",
		"include_bots": false,
	})
	require.NoError(t, err)

	result := out.(ListMembersResult)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "u1", result.Members[0].ID)
	assert.Equal(t, "u2", result.Members[1].ID)
}

func TestListMembersFollowsCursorAcrossPages(t *testing.T) {
	adapter := newTestAdapter()

	page := func(start, n int) []*discordgo.Member {
		out := make([]*discordgo.Member, 0, n)
		for i := start; i < start+n; i++ {
			out = append(out, &discordgo.Member{
				User:     &discordgo.User{ID: fmt.Sprintf("u%d", i), Username: fmt.Sprintf("user%d", i)},
				JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			})
		}
		return out
	}

	var afters []string
	client := &fakeClient{
		guildMembersFn: func(_, after string, limit int) ([]*discordgo.Member, error) {
			afters = append(afters, after)
			assert.Equal(t, 1000, limit)
			if after == "" {
				return page(1, 1000), nil
			}
			return page(1001, 300), nil
		},
	}

	out, err := adapter.ListMembers(context.Background(), client, map[string]any{
		"server_id": "g1",
		"limit":     1500,
	})
	require.NoError(t, err)

	result := out.(ListMembersResult)
	assert.Equal(t, 1300, result.Count)
	assert.Equal(t, []string{"", "u1000"}, afters)
	assert.Equal(t, "2024-01-01T00:00:00Z", result.Members[0].JoinedAt)
}

func TestBanMemberForwardsHistoryPurgeWindow(t *testing.T) {
	adapter := newTestAdapter(WithDefaultGuild("g1"))

	client := &fakeClient{
		guildBanCreateFn: func(guildID, userID, reason string, days int) error {
			assert.Equal(t, "g1", guildID)
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "spam", reason)
			assert.Equal(t, 3, days)
			return nil
		},
	}

	out, err := adapter.BanMember(context.Background(), client, map[string]any{
		"user_id":             "u1",
		"reason":              "spam",
		"delete_message_days": 3,
	})
	require.NoError(t, err)

	result := out.(ModerationResult)
	assert.Equal(t, "ban", result.Action)
}

func TestTimeoutMemberComputesExpiry(t *testing.T) {
	adapter := newTestAdapter(WithDefaultGuild("g1"))

	client := &fakeClient{
		guildMemberTimeoutFn: func(_, userID string, until *time.Time) error {
			assert.Equal(t, "u1", userID)
			require.NotNil(t, until)
			assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), *until, 5*time.Second)
			return nil
		},
	}

	_, err := adapter.TimeoutMember(context.Background(), client, map[string]any{
		"user_id":          "u1",
		"duration_minutes": 15,
	})
	require.NoError(t, err)
}

func TestListBansFollowsCursorAcrossPages(t *testing.T) {
	adapter := newTestAdapter()

	page := func(start, n int) []*discordgo.GuildBan {
		out := make([]*discordgo.GuildBan, 0, n)
		for i := start; i < start+n; i++ {
			out = append(out, &discordgo.GuildBan{
				Reason: fmt.Sprintf("reason %d", i),
				User:   &discordgo.User{ID: fmt.Sprintf("u%d", i), Username: fmt.Sprintf("user%d", i)},
			})
		}
		return out
	}

	var afters []string
	client := &fakeClient{
		guildBansFn: func(_ string, limit int, beforeID, afterID string) ([]*discordgo.GuildBan, error) {
			afters = append(afters, afterID)
			assert.Equal(t, 1000, limit)
			assert.Empty(t, beforeID)
			if afterID == "" {
				return page(1, 1000), nil
			}
			return page(1001, 1), nil
		},
	}

	out, err := adapter.ListBans(context.Background(), client, map[string]any{
		"server_id": "g1",
	})
	require.NoError(t, err)

	result := out.(ListBansResult)
	assert.Equal(t, 1001, result.Count)
	assert.Equal(t, []string{"", "u1000"}, afters)
	assert.Equal(t, "u1", result.Bans[0].UserID)
	assert.Equal(t, "reason 1001", result.Bans[1000].Reason)
}

func TestListBansClampsPageToCallerLimit(t *testing.T) {
	adapter := newTestAdapter()

	calls := 0
	client := &fakeClient{
		guildBansFn: func(_ string, limit int, _, _ string) ([]*discordgo.GuildBan, error) {
			calls++
			assert.Equal(t, 5, limit)
			return []*discordgo.GuildBan{
				{User: &discordgo.User{ID: "u1"}},
				{User: &discordgo.User{ID: "u2"}},
				{User: &discordgo.User{ID: "u3"}},
				{User: &discordgo.User{ID: "u4"}},
				{User: &discordgo.User{ID: "u5"}},
			}, nil
		},
	}

	out, err := adapter.ListBans(context.Background(), client, map[string]any{
		"server_id": "g1",
		"limit":     5,
	})
	require.NoError(t, err)

	result := out.(ListBansResult)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, 1, calls, "a satisfied limit stops the loop")
}

func TestListMembersStopsWhenCursorCannotAdvance(t *testing.T) {
	adapter := newTestAdapter()

	calls := 0
	client := &fakeClient{
		guildMembersFn: func(_, _ string, _ int) ([]*discordgo.Member, error) {
			calls++
			out := make([]*discordgo.Member, 0, 1000)
			for i := 1; i < 1000; i++ {
				out = append(out, &discordgo.Member{
					User: &discordgo.User{ID: fmt.Sprintf("u%d", i)},
				})
			}
			// A full page whose last entry has no resolvable user.
			out = append(out, &discordgo.Member{})
			return out, nil
		},
	}

	out, err := adapter.ListMembers(context.Background(), client, map[string]any{
		"server_id": "g1",
		"limit":     1500,
	})
	require.NoError(t, err)

	result := out.(ListMembersResult)
	assert.Equal(t, 999, result.Count)
	assert.Equal(t, 1, calls)
}
