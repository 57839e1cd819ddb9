package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "txpulse-cli",
		Short: "TxPulse CLI tool",
		Long:  `A command line interface for interacting with the TxPulse API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8000", "Base URL of the TxPulse API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newSeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show whole-store analytics summary",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint("/api/analytics/summary")
		},
	}
}

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show most recent transactions",
		Run: func(cmd *cobra.Command, args []string) {
			getAndPrint(fmt.Sprintf("/api/analytics/recent?limit=%d", limit))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of transactions to show")

	return cmd
}

func newIngestCmd() *cobra.Command {
	var (
		id        string
		account   string
		amount    string
		txType    string
		timestamp string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a single transaction",
		Run: func(cmd *cobra.Command, args []string) {
			if id == "" {
				id = "tx-" + ulid.Make().String()
			}
			if timestamp == "" {
				timestamp = time.Now().UTC().Format(time.RFC3339)
			}
			if _, err := decimal.NewFromString(amount); err != nil {
				fmt.Printf("Invalid amount %q: %v\n", amount, err)
				os.Exit(1)
			}

			status, body, err := postTransaction(map[string]any{
				"id":        id,
				"account":   account,
				"amount":    amount,
				"type":      txType,
				"timestamp": timestamp,
			})
			if err != nil {
				fmt.Printf("Error making request: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("%d -> %s\n", status, body)
			if status != http.StatusOK {
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Transaction ID (generated when empty)")
	cmd.Flags().StringVar(&account, "account", "", "Account identifier")
	cmd.Flags().StringVar(&amount, "amount", "", "Transaction amount")
	cmd.Flags().StringVar(&txType, "type", "credit", "Transaction type (credit or debit)")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "RFC3339 timestamp (now when empty)")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func newSeedCmd() *cobra.Command {
	var (
		count    int
		rate     float64
		accounts []string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate and ingest random transactions",
		Run: func(cmd *cobra.Command, args []string) {
			seed(count, rate, accounts)
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "Number of transactions to generate")
	cmd.Flags().Float64Var(&rate, "rate", 1.0, "Transactions per second")
	cmd.Flags().StringSliceVar(&accounts, "accounts", []string{"A123", "B456", "C789"}, "Accounts to draw from")

	return cmd
}

func seed(count int, rate float64, accounts []string) {
	var delay time.Duration
	if rate > 0 {
		delay = time.Duration(float64(time.Second) / rate)
	}

	for i := 1; i <= count; i++ {
		status, body, err := postTransaction(randomTransaction(accounts))
		if err != nil {
			fmt.Printf("[%d] Error: %v\n", i, err)
		} else {
			fmt.Printf("[%d] %d -> %s\n", i, status, body)
		}

		if delay > 0 && i < count {
			time.Sleep(delay)
		}
	}
}

// randomTransaction mirrors the upstream feed: amounts uniform in
// [10, 2000) rounded to cents, random account and direction.
func randomTransaction(accounts []string) map[string]any {
	amount := decimal.NewFromFloat(10 + rand.Float64()*1990).Round(2)

	txType := "credit"
	if rand.Intn(2) == 0 {
		txType = "debit"
	}

	return map[string]any{
		"id":        "tx-" + ulid.Make().String(),
		"account":   accounts[rand.Intn(len(accounts))],
		"amount":    amount.String(),
		"type":      txType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}

func postTransaction(tx map[string]any) (int, string, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return 0, "", err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/transactions", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	return resp.StatusCode, string(respBody), nil
}

func getAndPrint(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
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

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}
