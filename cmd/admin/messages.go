package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"msg"},
		Short:   "Manage contact messages",
	}
	cmd.AddCommand(
		newMessagesListCmd(),
		newMessagesOpenCmd(),
		newMessagesToggleCmd(),
		newMessagesDeleteCmd(),
	)
	return cmd
}

// loadMessages returns a loaded inbox controller. Callers must Close it.
func loadMessages(cmd *cobra.Command) (*dashboard.Messages, error) {
	m := dashboard.NewMessages(api.Messages(), notifier(cmd))
	if err := m.Load(cmd.Context()); err != nil {
		m.Close()
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	return m, nil
}

func newMessagesListCmd() *cobra.Command {
	var search, filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch filter {
			case dashboard.FilterAll, dashboard.FilterRead, dashboard.FilterUnread:
			default:
				return fmt.Errorf("--filter must be all, read or unread")
			}
			m, err := loadMessages(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			m.SetSearch(search)
			m.SetFilter(filter)
			visible := m.Visible()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderMessageTable(visible))
			fmt.Fprintf(out, "Showing %d of %d messages, %d unread\n", len(visible), len(m.State().Items), m.UnreadCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search name, email, subject and message")
	cmd.Flags().StringVar(&filter, "filter", dashboard.FilterAll, "all, read or unread")
	return cmd
}

func newMessagesOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Show a message and mark it read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMessages(cmd)
			if err != nil {
				return err
			}
			defer m.Close()

			msg, err := m.Open(cmd.Context(), args[0])
			if err != nil && msg.ID == "" {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMessage(msg))
			return nil
		},
	}
}

func newMessagesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a message between read and unread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMessages(cmd)
			if err != nil {
				return err
			}
			defer m.Close()
			return m.ToggleRead(cmd.Context(), args[0])
		},
	}
}

func newMessagesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMessages(cmd)
			if err != nil {
				return err
			}
			defer m.Close()
			return m.Delete(cmd.Context(), args[0])
		},
	}
}
