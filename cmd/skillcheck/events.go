package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/roster"
)

var (
	eventName        string
	eventSkill       string
	eventDifficulty  int
	eventDescription string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage skill check events",
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.roster.ListEvents(cmd.Context())
		if err != nil {
			return err
		}
		printEvents(out.Events)
		return nil
	},
}

var addEventCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a skill check event",
	Long: `Add an event. The DC defaults to 10. Example:

  events add "Spot the ambush" --skill Perception --dc 15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := current.roster.AddEvent(cmd.Context(), &roster.AddEventInput{
			Name:        args[0],
			Skill:       eventSkill,
			Difficulty:  eventDifficulty,
			Description: eventDescription,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added event %s (%s, DC %d) %s\n", out.Event.Name, out.Event.Skill, out.Event.Difficulty, out.Event.ID)
		return nil
	},
}

var updateEventCmd = &cobra.Command{
	Use:   "update [event-id]",
	Short: "Change an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		got, err := current.roster.GetEvent(ctx, &roster.GetEventInput{EventID: args[0]})
		if err != nil {
			return err
		}

		input := &roster.UpdateEventInput{
			EventID:     args[0],
			Name:        got.Event.Name,
			Skill:       got.Event.Skill,
			Difficulty:  got.Event.Difficulty,
			Description: got.Event.Description,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			input.Name = eventName
		}
		if flags.Changed("skill") {
			input.Skill = eventSkill
		}
		if flags.Changed("dc") {
			input.Difficulty = eventDifficulty
		}
		if flags.Changed("description") {
			input.Description = eventDescription
		}

		out, err := current.roster.UpdateEvent(ctx, input)
		if err != nil {
			return err
		}
		printEvents([]*entities.SkillCheckEvent{out.Event})
		return nil
	},
}

var removeEventCmd = &cobra.Command{
	Use:   "remove [event-id]",
	Short: "Remove an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.roster.RemoveEvent(cmd.Context(), &roster.RemoveEventInput{EventID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Removed event %s\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{addEventCmd, updateEventCmd} {
		cmd.Flags().StringVar(&eventSkill, "skill", "", "skill the check uses")
		cmd.Flags().IntVar(&eventDifficulty, "dc", 0, "difficulty class")
		cmd.Flags().StringVar(&eventDescription, "description", "", "optional description")
	}
	updateEventCmd.Flags().StringVar(&eventName, "name", "", "new event name")

	eventsCmd.AddCommand(listEventsCmd)
	eventsCmd.AddCommand(addEventCmd)
	eventsCmd.AddCommand(updateEventCmd)
	eventsCmd.AddCommand(removeEventCmd)
}
