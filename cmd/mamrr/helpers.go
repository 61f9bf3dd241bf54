package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mamrr/internal/notify"
	"mamrr/internal/workflow"
)

// drainNotifications prints and consumes everything the coordinator queued
// during the action. Errors go to stderr so they survive piping.
func drainNotifications(cmd *cobra.Command, coordinator *workflow.Coordinator) {
	for _, notification := range coordinator.Notifications().Drain() {
		target := cmd.OutOrStdout()
		prefix := "•"
		switch notification.Severity {
		case notify.SeveritySuccess:
			prefix = "✔"
		case notify.SeverityError:
			prefix = "✖"
			target = cmd.ErrOrStderr()
		}
		fmt.Fprintf(target, "%s %s\n", prefix, notification.Text)
	}
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read so tests and pipes keep working.
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
		data, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return readLine(in)
}

func readLine(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("input is empty")
	}
	return line, nil
}
