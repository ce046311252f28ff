package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// Swappable for tests; bcrypt at default cost is slow on purpose.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "cashbook-cli",
		Short: "Cashbook CLI tool",
		Long:  `A command line interface for the cashbook reconciliation API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the cashbook API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting operations",
	}
	reportCmd.AddCommand(dailyReportCmd())
	rootCmd.AddCommand(reportCmd)

	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Day entry operations",
	}
	entriesCmd.AddCommand(listEntriesCmd())
	rootCmd.AddCommand(entriesCmd)

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func dailyReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily <date>",
		Short: "Print the daily reconciliation report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printDailyReport(args[0])
		},
	}
}

func listEntriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <date>",
		Short: "List every counter's entry for a date",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listEntries(args[0])
		},
	}
}

// hashPasswordCmd hashes a password for seeding users straight into the
// database, before any admin login exists.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding a user row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func printDailyReport(date string) {
	body := getJSON("/api/v1/reports/daily/" + date)

	var report struct {
		Date     string `json:"date"`
		Counters []struct {
			CounterName  string          `json:"counterName"`
			Status       string          `json:"status"`
			ExpectedCash json.RawMessage `json:"expectedCash"`
			ActualCash   json.RawMessage `json:"actualCash"`
			Shortage     json.RawMessage `json:"shortage"`
		} `json:"counters"`
		MissingEntry  []string        `json:"missingEntry"`
		TotalShortage json.RawMessage `json:"totalShortage"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Daily report for %s\n", report.Date)
	for _, c := range report.Counters {
		fmt.Printf("  %-30s %-10s expected=%s actual=%s shortage=%s\n",
			truncate(c.CounterName, 30), c.Status, c.ExpectedCash, c.ActualCash, c.Shortage)
	}
	for _, missing := range report.MissingEntry {
		fmt.Printf("  %-30s MISSING\n", truncate(missing, 30))
	}
	fmt.Printf("Total shortage: %s\n", report.TotalShortage)
}

func listEntries(date string) {
	body := getJSON("/api/v1/entries/" + date + "/")

	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, entry := range entries {
		printJSON(entry)
	}
}

func getJSON(path string) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
