package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

type outcome string

const (
	outcomeDone    outcome = "done"
	outcomeSkipped outcome = "skipped"
	outcomeFailed  outcome = "failed"
)

// pipelineDeps bundles what one reaction needs to get handled.
type pipelineDeps struct {
	slackClient slackAPI
	jira        *jiraClient
	dedup       *dedupStore
}

func subscribeToReactions(ctx context.Context, rdb *redis.Client, deps pipelineDeps, config Config) {
	pubsub := rdb.Subscribe(ctx, config.RedisReactionChannel)
	defer pubsub.Close()

	Info("Subscribed to Redis channel: %s", config.RedisReactionChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			if msg == nil {
				continue
			}
			go handleReaction(ctx, deps, msg.Payload, config)
		}
	}
}

// handleReaction runs one reaction event through dedup, filtering, message
// fetch, ticket creation and the threaded confirmation.
func handleReaction(ctx context.Context, deps pipelineDeps, payload string, config Config) outcome {
	var event ReactionAddedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		Error("Error unmarshaling reaction event: %v", err)
		return outcomeSkipped
	}
	ev := event.Event

	key := dedupKey(ev.Item.Channel, ev.Item.Ts, ev.User, ev.Reaction)
	if deps.dedup.Contains(key) {
		Debug("Duplicate reaction ignored: %s", key)
		return outcomeSkipped
	}

	if ev.Reaction != config.TriggerEmoji {
		Debug("Ignoring reaction %q, trigger is %q", ev.Reaction, config.TriggerEmoji)
		return outcomeSkipped
	}

	channelName, err := resolveChannelName(ctx, deps.slackClient, ev.Item.Channel)
	if err != nil {
		Error("Cannot confirm target channel, skipping event: %v", err)
		return outcomeSkipped
	}
	if channelName != config.TargetChannelName {
		Debug("Ignoring reaction in #%s, target is #%s", channelName, config.TargetChannelName)
		return outcomeSkipped
	}

	// Recorded before any further network call so a concurrent duplicate
	// delivery cannot also reach ticket creation.
	if !deps.dedup.Record(key) {
		Debug("Duplicate reaction lost the race: %s", key)
		return outcomeSkipped
	}

	msg, err := fetchMessageAt(ctx, deps.slackClient, ev.Item.Channel, ev.Item.Ts)
	if err != nil {
		Error("Reacted message not found, giving up: %v", err)
		return outcomeFailed
	}

	authorName := resolveUserName(ctx, deps.slackClient, msg.User)
	permalink := resolvePermalink(ctx, deps.slackClient, ev.Item.Channel, ev.Item.Ts)

	md := messageData{
		Text:       extractMessageText(msg),
		AuthorName: authorName,
		Permalink:  permalink,
	}

	result, err := submitTicket(ctx, deps.jira, md, config)
	if err != nil {
		Error("Ticket creation failed: %v", err)
		reply := fmt.Sprintf("⚠️ Failed to create ticket: %v", err)
		if postErr := postThreadReply(ctx, deps.slackClient, ev.Item.Channel, ev.Item.Ts, reply); postErr != nil {
			Error("Error posting failure reply: %v", postErr)
		}
		return outcomeFailed
	}

	Info("Created ticket %s for reaction by %s in #%s", result.Key, ev.User, channelName)

	confirmation := fmt.Sprintf("✅ Ticket created: %s/browse/%s",
		strings.TrimRight(config.JiraBaseURL, "/"), result.Key)
	if err := postThreadReply(ctx, deps.slackClient, ev.Item.Channel, ev.Item.Ts, confirmation); err != nil {
		Error("Error posting confirmation reply: %v", err)
	}
	return outcomeDone
}
