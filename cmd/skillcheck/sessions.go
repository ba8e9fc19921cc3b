package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/session"
)

var (
	sessionName    string
	sessionPlayers []string
	sessionEvents  []string
	allPlayers     bool
	allEvents      bool
	listStatus     string
	listSearch     string
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"sessions"},
	Short:   "Create check sessions and move them through their lifecycle",
}

var createSessionCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a session from selected players and events",
	Long: `Create a session with one check per selected player and event. A still
active session is completed first. Example:

  session create --name "Forest road" --all-players --event <event-id>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		players, err := selectPlayers(ctx)
		if err != nil {
			return err
		}
		events, err := selectEvents(ctx)
		if err != nil {
			return err
		}

		out, err := current.sessions.CreateSession(ctx, &session.CreateSessionInput{
			Name:    sessionName,
			Players: players,
			Events:  events,
		})
		if err != nil {
			return err
		}
		if out.CompletedSessionID != "" {
			fmt.Printf("Completed session %s\n", out.CompletedSessionID)
		}
		printSession(out.Session)
		return nil
	},
}

var showSessionCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session; the current one by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(args) == 1 {
			out, err := current.sessions.GetSession(ctx, &session.GetSessionInput{SessionID: args[0]})
			if err != nil {
				return err
			}
			printSession(out.Session)
			return nil
		}

		out, err := current.sessions.GetActive(ctx)
		if err != nil {
			return err
		}
		if out.Session == nil {
			fmt.Println("No active session.")
			return nil
		}
		printSession(out.Session)
		return nil
	},
}

var listSessionsCmd = &cobra.Command{
	Use:   "list",
	Short: "List session history, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.sessions.ListSessions(cmd.Context(), &session.ListSessionsInput{
			Status: listStatus,
			Search: listSearch,
		})
		if err != nil {
			return err
		}
		printSummaries(out.Sessions, out.CurrentSessionID)
		return nil
	},
}

var closeSessionCmd = &cobra.Command{
	Use:   "close",
	Short: "Complete the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.sessions.CloseSession(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Completed session %s\n", out.Session.Name)
		return nil
	},
}

var loadSessionCmd = &cobra.Command{
	Use:   "load [session-id]",
	Short: "Make a session from history current again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := current.sessions.LoadSession(cmd.Context(), &session.LoadSessionInput{SessionID: args[0]})
		if err != nil {
			return err
		}
		if out.CompletedSessionID != "" {
			fmt.Printf("Completed session %s\n", out.CompletedSessionID)
		}
		printSession(out.Session)
		return nil
	},
}

var archiveSessionCmd = &cobra.Command{
	Use:   "archive [session-id]",
	Short: "Archive a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := current.sessions.ArchiveSession(cmd.Context(), &session.ArchiveSessionInput{SessionID: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Archived session %s\n", out.Session.Name)
		return nil
	},
}

var deleteSessionCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.sessions.DeleteSession(cmd.Context(), &session.DeleteSessionInput{SessionID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted session %s\n", args[0])
		return nil
	},
}

func selectPlayers(ctx context.Context) ([]*entities.Player, error) {
	if allPlayers {
		out, err := current.roster.ListPlayers(ctx)
		if err != nil {
			return nil, err
		}
		return out.Players, nil
	}

	players := make([]*entities.Player, 0, len(sessionPlayers))
	for _, id := range sessionPlayers {
		out, err := current.roster.GetPlayer(ctx, &roster.GetPlayerInput{PlayerID: id})
		if err != nil {
			return nil, err
		}
		players = append(players, out.Player)
	}
	return players, nil
}

func selectEvents(ctx context.Context) ([]*entities.SkillCheckEvent, error) {
	if allEvents {
		out, err := current.roster.ListEvents(ctx)
		if err != nil {
			return nil, err
		}
		return out.Events, nil
	}

	events := make([]*entities.SkillCheckEvent, 0, len(sessionEvents))
	for _, id := range sessionEvents {
		out, err := current.roster.GetEvent(ctx, &roster.GetEventInput{EventID: id})
		if err != nil {
			return nil, err
		}
		events = append(events, out.Event)
	}
	return events, nil
}

func init() {
	createSessionCmd.Flags().StringVar(&sessionName, "name", "", "session name (timestamped by default)")
	createSessionCmd.Flags().StringSliceVar(&sessionPlayers, "player", nil, "player id to include (repeatable)")
	createSessionCmd.Flags().StringSliceVar(&sessionEvents, "event", nil, "event id to include (repeatable)")
	createSessionCmd.Flags().BoolVar(&allPlayers, "all-players", false, "include every player")
	createSessionCmd.Flags().BoolVar(&allEvents, "all-events", false, "include every event")

	listSessionsCmd.Flags().StringVar(&listStatus, "status", session.StatusAll, "all, active, completed or archived")
	listSessionsCmd.Flags().StringVar(&listSearch, "search", "", "filter by name")

	sessionCmd.AddCommand(createSessionCmd)
	sessionCmd.AddCommand(showSessionCmd)
	sessionCmd.AddCommand(listSessionsCmd)
	sessionCmd.AddCommand(closeSessionCmd)
	sessionCmd.AddCommand(loadSessionCmd)
	sessionCmd.AddCommand(archiveSessionCmd)
	sessionCmd.AddCommand(deleteSessionCmd)
}
