package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/notifier"
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.api == nil {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendReconciliation(report processor.Report, dryRun bool) error {
	msg := s.formatReconciliation(report)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(rows []league.Standing, dryRun bool) error {
	msg := s.formatStandings(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the league table for a slash command response.
func (s *Notifier) FormatStandingsResponse(rows []league.Standing) (any, error) {
	return s.formatStandings(rows), nil
}

// FormatPlayerResponse formats one player's line for a slash command response.
// A nil row means nobody matched the query.
func (s *Notifier) FormatPlayerResponse(row *league.Standing, query string) (any, error) {
	if row == nil {
		return s.formatPlayerNotFound(query), nil
	}
	return s.formatPlayer(row), nil
}

// formatReconciliation summarizes what a pass changed, one line per player and deck.
func (s *Notifier) formatReconciliation(report processor.Report) slack.Message {
	blocks := make([]slack.Block, 0)

	title := ":crossed_swords: Match recorded"
	if report.Direction == processor.DirectionRollback {
		title = ":rewind: Match deleted"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	format := "Competitive"
	if report.Casual {
		format = "Casual"
	}
	summary := fmt.Sprintf("Match *%s* | %s", orDash(report.MatchID), format)
	if report.SkippedSeats > 0 {
		summary += fmt.Sprintf(" | %d seat(s) skipped", report.SkippedSeats)
	}
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", summary, false, false)))

	if len(report.Players) == 0 && len(report.Decks) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No statistics changed.", true, false), nil, nil))
	}
	if len(report.Players) > 0 {
		blocks = append(blocks, changeSection("*Players*", report.Players))
	}
	if len(report.Decks) > 0 {
		blocks = append(blocks, changeSection("*Decks*", report.Decks))
	}

	if report.Error != "" {
		blocks = append(blocks, slack.NewDividerBlock())
		warning := fmt.Sprintf(":warning: Not every update was applied (pass `%s`). Check the journal.", report.PassID)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", warning, false, false), nil, nil))
	}
	return slack.NewBlockMessage(blocks...)
}

func changeSection(title string, changes []processor.EntityChange) *slack.SectionBlock {
	var sb strings.Builder
	sb.WriteString(title)
	for _, c := range changes {
		mark := ":white_check_mark:"
		if !c.Applied {
			mark = ":x:"
		}
		fmt.Fprintf(&sb, "\n%s %s: %s (%s)", mark, c.Name, formatDelta(c.Delta), formatRecord(c.After))
	}
	return slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", sb.String(), false, false), nil, nil)
}

// formatStandings creates a Slack message to display the league table.
func (s *Notifier) formatStandings(rows []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", ":trophy: League Standings :trophy:", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Go play some games!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, row := range rows {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = ":first_place_medal:"
		case 2:
			medal = ":second_place_medal:"
		case 3:
			medal = ":third_place_medal:"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %.2f%% (%s)",
			rank,
			medal,
			row.Name,
			row.WinPercentage,
			formatRecord(row.Counters),
		)
		if row.FavoriteDeck != "" {
			playerText += fmt.Sprintf(" | Favorite deck: %s", row.FavoriteDeck)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayer(row *league.Standing) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf(":bar_chart: %s", row.Name), true, false)
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Win %%*\n%.2f%%", row.WinPercentage), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Record*\n%s", formatRecord(row.Counters)), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Casual*\n%d-%d", row.Counters.CasualWins, row.Counters.CasualLosses), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Favorite deck*\n%s", orDash(row.FavoriteDeck)), false, false),
	}
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(nil, fields, nil),
	)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Could not find a player matching '%s'.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, false, false), nil, nil),
	)
}

func formatDelta(d stats.Delta) string {
	var parts []string
	add := func(n int, label string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", n, label))
		}
	}
	add(d.Wins, "W")
	add(d.Losses, "L")
	add(d.Ties, "T")
	add(d.CasualWins, "casual W")
	add(d.CasualLosses, "casual L")
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}

func formatRecord(c stats.Counters) string {
	return fmt.Sprintf("%d-%d-%d", c.Wins, c.Losses, c.Ties)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
