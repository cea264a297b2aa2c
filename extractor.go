package main

import (
	"strings"

	"github.com/slack-go/slack"
)

const noContentFallback = "no content available"

// extractMessageText flattens a Slack message into a single text blob:
// plain text, then block text, then legacy attachment text, non-empty
// sections separated by a blank line. Never returns an empty string.
func extractMessageText(msg *slack.Message) string {
	var sections []string

	if text := strings.TrimSpace(msg.Text); text != "" {
		sections = append(sections, text)
	}

	if blockText := extractBlockText(msg.Blocks.BlockSet); blockText != "" {
		sections = append(sections, blockText)
	}

	if attText := extractAttachmentText(msg.Attachments); attText != "" {
		sections = append(sections, attText)
	}

	if len(sections) == 0 {
		return noContentFallback
	}
	return strings.Join(sections, "\n\n")
}

func extractBlockText(blocks []slack.Block) string {
	var parts []string
	for _, block := range blocks {
		var text string
		switch b := block.(type) {
		case *slack.SectionBlock:
			text = sectionBlockText(b)
		case *slack.RichTextBlock:
			text = richTextBlockText(b)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func sectionBlockText(b *slack.SectionBlock) string {
	var parts []string
	if b.Text != nil && b.Text.Text != "" {
		parts = append(parts, b.Text.Text)
	}
	for _, f := range b.Fields {
		if f != nil && f.Text != "" {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func richTextBlockText(b *slack.RichTextBlock) string {
	var runs []string
	for _, el := range b.Elements {
		section, ok := el.(*slack.RichTextSection)
		if !ok {
			continue
		}
		for _, se := range section.Elements {
			if textEl, ok := se.(*slack.RichTextSectionTextElement); ok && textEl.Text != "" {
				runs = append(runs, textEl.Text)
			}
		}
	}
	return strings.Join(runs, "\n")
}

func extractAttachmentText(attachments []slack.Attachment) string {
	var parts []string
	for _, att := range attachments {
		var lines []string
		if att.Pretext != "" {
			lines = append(lines, att.Pretext)
		}
		if att.Text != "" {
			lines = append(lines, att.Text)
		}
		for _, f := range att.Fields {
			switch {
			case f.Title != "" && f.Value != "":
				lines = append(lines, f.Title+": "+f.Value)
			case f.Value != "":
				lines = append(lines, f.Value)
			}
		}
		if text := strings.TrimSpace(strings.Join(lines, "\n")); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
