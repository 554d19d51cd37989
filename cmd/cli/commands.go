package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/spf13/cobra"
)

var (
	dryRun       bool
	journalLimit int
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(winPercentageCmd)
	rootCmd.AddCommand(suggestDeckCmd)
	rootCmd.AddCommand(recordMatchCmd)
	rootCmd.AddCommand(deleteMatchCmd)

	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "Number of reconciliation passes to show")
	recordMatchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the statistics change without recording the match")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the league table",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []league.Standing
		if err := getJSON("/players", &rows); err != nil {
			return err
		}
		tbl := newTable()
		tbl.AppendHeader(table.Row{"#", "Player", "W", "L", "T", "Win %", "Favorite deck"})
		for i, row := range rows {
			tbl.AppendRow(table.Row{
				i + 1, row.Name, row.Counters.Wins, row.Counters.Losses, row.Counters.Ties,
				fmt.Sprintf("%.1f", row.WinPercentage), row.FavoriteDeck,
			})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recent reconciliation passes",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []journal.Entry
		if err := getJSON("/journal?limit="+strconv.Itoa(journalLimit), &entries); err != nil {
			return err
		}
		tbl := newTable()
		tbl.AppendHeader(table.Row{"Started", "Match", "Direction", "Status", "Changes", "Skipped", "Error"})
		for _, e := range entries {
			applied := 0
			for _, c := range e.Changes {
				if c.Applied {
					applied++
				}
			}
			tbl.AppendRow(table.Row{
				e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.MatchID, e.Direction, e.Status,
				fmt.Sprintf("%d/%d", applied, len(e.Changes)), e.SkippedSeats, e.Error,
			})
		}
		fmt.Println(tbl.Render())
		return nil
	},
}

var winPercentageCmd = &cobra.Command{
	Use:   "win-percentage [player]",
	Short: "Get the win percentage of a player by id or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/win-percentage")
	},
}

var suggestDeckCmd = &cobra.Command{
	Use:   "suggest-deck [player]",
	Short: "Suggest the deck a player plays most",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players/" + url.PathEscape(args[0]) + "/suggested-deck")
	},
}

var recordMatchCmd = &cobra.Command{
	Use:   "record-match [file.json]",
	Short: "Record a match from a JSON file and apply its statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read match file: %w", err)
		}
		endpoint := "/matches"
		if dryRun {
			endpoint = "/matches/preview"
		}
		return performRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	},
}

var deleteMatchCmd = &cobra.Command{
	Use:   "delete-match [key]",
	Short: "Delete a match and revert its statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches/"+url.PathEscape(args[0]), nil)
	},
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	return tbl
}

func getJSON(endpoint string, v any) error {
	resp, err := http.Get(host + endpoint)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, body io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
