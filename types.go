package main

// ReactionAddedEvent is the Slack Events API callback the relay publishes on
// the reaction channel, verbatim.
type ReactionAddedEvent struct {
	Token   string `json:"token"`
	Type    string `json:"type"`
	EventID string `json:"event_id"`
	Event   struct {
		Type     string `json:"type"`
		User     string `json:"user"`
		Reaction string `json:"reaction"`
		Item     struct {
			Type    string `json:"type"`
			Channel string `json:"channel"`
			Ts      string `json:"ts"`
		} `json:"item"`
		ItemUser string `json:"item_user"`
		EventTs  string `json:"event_ts"`
	} `json:"event"`
}

// messageData is everything the submitter needs about the reacted message.
type messageData struct {
	Text       string
	AuthorName string
	Permalink  string
}

// ticketResult identifies the Jira issue or request that got created.
type ticketResult struct {
	Key string
	ID  string
}

// jiraField describes one creatable field on the destination project, as
// reported by either discovery strategy.
type jiraField struct {
	ID       string
	Name     string
	Type     string
	Required bool
}
