package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/respwire/resp"
)

var (
	addr     string
	socket   string
	timeout  time.Duration
	dialWait time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "resp-cli",
	Short: "Interactive client for RESP key-value servers",
	Long: "resp-cli opens a single connection to a RESP server and sends each\n" +
		"line you type as one command, printing the decoded reply.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "127.0.0.1:6379", "server address (host:port)")
	rootCmd.Flags().StringVar(&socket, "socket", "", "unix socket path (overrides --addr)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "read timeout, 0 waits indefinitely")
	rootCmd.Flags().DurationVar(&dialWait, "connect-timeout", 0, "connect timeout, 0 uses the default")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	target := resp.Target{Network: "tcp", Addr: addr}
	if socket != "" {
		target = resp.UnixTarget(socket)
	}

	conn, err := resp.DialTarget(target, resp.Config{
		ConnectTimeout: dialWait,
		ReadTimeout:    timeout,
	})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", target.Addr, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s\n", target.Addr)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		reply, err := conn.Do(strings.Fields(line)...)
		if err != nil {
			var te *resp.TimeoutError
			if errors.As(err, &te) {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			// Resets and protocol desync poison the connection; bail out.
			return err
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}
