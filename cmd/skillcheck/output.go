package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-skillcheck/internal/entities"
)

const timeLayout = "2006-01-02 15:04"

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
}

func printPlayers(players []*entities.Player) {
	if len(players) == 0 {
		fmt.Println("No players yet.")
		return
	}

	w := newTable()
	defer flush(w)
	fmt.Fprintln(w, "ID\tNAME\tSKILLS")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, formatSkills(p.Skills))
	}
}

func printEvents(events []*entities.SkillCheckEvent) {
	if len(events) == 0 {
		fmt.Println("No events yet.")
		return
	}

	w := newTable()
	defer flush(w)
	fmt.Fprintln(w, "ID\tNAME\tSKILL\tDC\tDESCRIPTION")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.ID, e.Name, e.Skill, e.Difficulty, e.Description)
	}
}

func printSession(s *entities.CheckSession) {
	fmt.Printf("%s  [%s]  %s\n", s.Name, s.Status, s.ID)
	fmt.Printf("Created %s", s.CreatedAt.Local().Format(timeLayout))
	if s.CompletedAt != nil {
		fmt.Printf(", completed %s", s.CompletedAt.Local().Format(timeLayout))
	}
	fmt.Println()

	stats := s.Stats()
	fmt.Printf("%d checks: %d success, %d failure, %d pending\n\n",
		stats.Total, stats.Success, stats.Failure, stats.Pending)

	w := newTable()
	defer flush(w)
	fmt.Fprintln(w, "ITEM\tPLAYER\tEVENT\tSKILL\tMOD\tDC\tD20\tBONUS\tTOTAL\tRESULT")
	for _, item := range s.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%+d\t%d\t%s\t%s\t%s\t%s\n",
			shortID(item.ID),
			item.PlayerName,
			item.EventName,
			item.Skill,
			item.Modifier,
			item.Difficulty,
			formatDie(item),
			formatOptional(item.CustomBonus, true),
			formatOptional(item.Total, false),
			item.Result,
		)
	}
}

func printItem(item *entities.CheckItem) {
	fmt.Printf("%s vs %s (%s, DC %d): d20 %s, total %s, %s\n",
		item.PlayerName,
		item.EventName,
		item.Skill,
		item.Difficulty,
		formatDie(item),
		formatOptional(item.Total, false),
		item.Result,
	)
}

func printSummaries(summaries []entities.SessionSummary, currentID string) {
	if len(summaries) == 0 {
		fmt.Println("No sessions found.")
		return
	}

	w := newTable()
	defer flush(w)
	fmt.Fprintln(w, "\tID\tNAME\tSTATUS\tCREATED\tPLAYERS\tEVENTS\tDONE\tSUCCESS")
	for _, s := range summaries {
		marker := ""
		if s.ID == currentID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d/%d\t%.0f%%\n",
			marker,
			s.ID,
			s.Name,
			s.Status,
			s.CreatedAt.Local().Format(timeLayout),
			s.PlayerCount,
			s.EventCount,
			s.CompletedChecks,
			s.TotalChecks,
			s.SuccessRate()*100,
		)
	}
}

// formatDie shows the die face with its source: a plain roll, a roll under
// advantage or disadvantage, or a hand-entered value
func formatDie(item *entities.CheckItem) string {
	var flag string
	switch {
	case item.Advantage:
		flag = " adv"
	case item.Disadvantage:
		flag = " dis"
	}

	switch {
	case item.DiceRoll != nil:
		return strconv.Itoa(*item.DiceRoll) + flag
	case item.CustomValue != nil:
		return strconv.Itoa(*item.CustomValue) + " (set)" + flag
	default:
		return "-" + flag
	}
}

func formatOptional(v *int, signed bool) string {
	if v == nil {
		return "-"
	}
	if signed {
		return fmt.Sprintf("%+d", *v)
	}
	return strconv.Itoa(*v)
}

func formatSkills(skills map[string]int) string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %+d", name, skills[name])
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func flush(w *tabwriter.Writer) {
	_ = w.Flush() // nolint:errcheck // stdout
}
