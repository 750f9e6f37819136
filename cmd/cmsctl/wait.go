package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the CMS server to be ready",
	Long: `Wait until /api/health reports {"status":"ok"}.

A server that answers 503 is up but cannot reach its storage; wait keeps
polling in that case and reports the last status it saw.

Example:
  cmsctl wait
  cmsctl wait --port 3000 --retries 60
  cmsctl wait --url https://cms.example.org --interval 5s`,
	Run: func(cmd *cobra.Command, args []string) {
		baseURL, _ := cmd.Flags().GetString("url")
		if baseURL == "" {
			port, _ := cmd.Flags().GetInt("port")
			baseURL = fmt.Sprintf("http://localhost:%d", port)
		}
		retries, _ := cmd.Flags().GetInt("retries")
		interval, _ := cmd.Flags().GetDuration("interval")

		if err := waitForHealth(os.Stdout, baseURL, retries, interval); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("CMS server is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", defaultPortInt(), "Server port to check on localhost")
	waitCmd.Flags().String("url", "", "Base URL of the server (overrides --port)")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of attempts")
	waitCmd.Flags().Duration("interval", time.Second, "Delay between attempts")
}

// waitForHealth polls the health endpoint, printing a dot per failed attempt
func waitForHealth(out io.Writer, baseURL string, retries int, interval time.Duration) error {
	url := strings.TrimSuffix(baseURL, "/") + "/api/health"
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Fprintf(out, "Waiting for %s...\n", url)

	last := "no response"
	for i := 0; i < retries; i++ {
		status, err := healthStatus(client, url)
		if err == nil && status == "ok" {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			last = err.Error()
		} else {
			last = "status " + status
		}

		fmt.Fprint(out, ".")
		time.Sleep(interval)
	}

	fmt.Fprintln(out)
	return fmt.Errorf("not ready after %d attempts (last: %s)", retries, last)
}

func healthStatus(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("HTTP %d: unreadable body", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && body.Status == "ok" {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return body.Status, nil
}
