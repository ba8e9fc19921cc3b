package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/roster"
)

var (
	playerSkills map[string]int
	playerName   string
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage the player roster",
}

var listPlayersCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := current.roster.ListPlayers(cmd.Context())
		if err != nil {
			return err
		}
		printPlayers(out.Players)
		return nil
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a player",
	Long: `Add a player with optional skill modifiers. Example:

  players add Aria --skill Stealth=5 --skill Perception=3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := current.roster.AddPlayer(cmd.Context(), &roster.AddPlayerInput{
			Name:   args[0],
			Skills: playerSkills,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added player %s (%s)\n", out.Player.Name, out.Player.ID)
		return nil
	},
}

var updatePlayerCmd = &cobra.Command{
	Use:   "update [player-id]",
	Short: "Rename a player or replace their skills",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		got, err := current.roster.GetPlayer(ctx, &roster.GetPlayerInput{PlayerID: args[0]})
		if err != nil {
			return err
		}

		input := &roster.UpdatePlayerInput{
			PlayerID: args[0],
			Name:     got.Player.Name,
		}
		if cmd.Flags().Changed("name") {
			input.Name = playerName
		}
		if cmd.Flags().Changed("skill") {
			input.Skills = playerSkills
		}

		out, err := current.roster.UpdatePlayer(ctx, input)
		if err != nil {
			return err
		}
		printPlayers([]*entities.Player{out.Player})
		return nil
	},
}

var setSkillCmd = &cobra.Command{
	Use:   "set-skill [player-id] [skill] [modifier]",
	Short: "Set one skill modifier",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		modifier, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("modifier must be an integer: %w", err)
		}

		out, err := current.roster.SetPlayerSkill(cmd.Context(), &roster.SetPlayerSkillInput{
			PlayerID: args[0],
			Skill:    args[1],
			Modifier: modifier,
		})
		if err != nil {
			return err
		}
		printPlayers([]*entities.Player{out.Player})
		return nil
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove [player-id]",
	Short: "Remove a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.roster.RemovePlayer(cmd.Context(), &roster.RemovePlayerInput{PlayerID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Removed player %s\n", args[0])
		return nil
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills checks can target",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, skill := range entities.Skills {
			fmt.Println(skill)
		}
		return nil
	},
}

func init() {
	addPlayerCmd.Flags().StringToIntVar(&playerSkills, "skill", nil, "skill modifier as Name=N (repeatable)")
	updatePlayerCmd.Flags().StringToIntVar(&playerSkills, "skill", nil, "replace skills with Name=N (repeatable)")
	updatePlayerCmd.Flags().StringVar(&playerName, "name", "", "new player name")

	playersCmd.AddCommand(listPlayersCmd)
	playersCmd.AddCommand(addPlayerCmd)
	playersCmd.AddCommand(updatePlayerCmd)
	playersCmd.AddCommand(setSkillCmd)
	playersCmd.AddCommand(removePlayerCmd)
}
