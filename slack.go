package main

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

const (
	unknownUserFallback = "Unknown User"
	noPermalinkFallback = "(permalink unavailable)"
)

// slackAPI is the slice of the Slack Web API the pipeline consumes.
// *slack.Client satisfies it.
type slackAPI interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	GetPermalinkContext(ctx context.Context, params *slack.PermalinkParameters) (string, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// fetchMessageAt returns the message at exactly the given timestamp, or an
// error when no such message exists.
func fetchMessageAt(ctx context.Context, api slackAPI, channelID, ts string) (*slack.Message, error) {
	resp, err := api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Latest:    ts,
		Inclusive: true,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s at %s: %w", channelID, ts, err)
	}
	if len(resp.Messages) == 0 || resp.Messages[0].Timestamp != ts {
		return nil, fmt.Errorf("no message found in %s at %s", channelID, ts)
	}
	msg := resp.Messages[0]
	return &msg, nil
}

// resolveUserName degrades to a fallback rather than failing the pipeline.
func resolveUserName(ctx context.Context, api slackAPI, userID string) string {
	if userID == "" {
		return unknownUserFallback
	}
	user, err := api.GetUserInfoContext(ctx, userID)
	if err != nil {
		Warn("User lookup failed for %s: %v", userID, err)
		return unknownUserFallback
	}
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName
	}
	if user.RealName != "" {
		return user.RealName
	}
	return user.Name
}

func resolveChannelName(ctx context.Context, api slackAPI, channelID string) (string, error) {
	channel, err := api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: channelID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve channel %s: %w", channelID, err)
	}
	return channel.Name, nil
}

// resolvePermalink degrades to a placeholder rather than failing the pipeline.
func resolvePermalink(ctx context.Context, api slackAPI, channelID, ts string) string {
	link, err := api.GetPermalinkContext(ctx, &slack.PermalinkParameters{Channel: channelID, Ts: ts})
	if err != nil {
		Warn("Permalink lookup failed for %s at %s: %v", channelID, ts, err)
		return noPermalinkFallback
	}
	return link
}

// postThreadReply posts text as a threaded reply under the given message.
func postThreadReply(ctx context.Context, api slackAPI, channelID, threadTS, text string) error {
	_, _, err := api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	return err
}
