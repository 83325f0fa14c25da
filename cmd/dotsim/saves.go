package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dotsim/internal/platform/tui"
	"github.com/vovakirdan/dotsim/internal/storage"
)

var (
	flagSavesScene string
	flagSavesLimit int
	flagClear      string
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Show saved positions and recorded runs",
	Long: `Print every scene's saved player position and the most recent runs.

Examples:
  dotsim saves
  dotsim saves --scene wall --limit 20
  dotsim saves --clear wall    # forget wall's position and runs`,
	Run: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagSavesScene, "scene", "", "Only show runs of this scene")
	savesCmd.Flags().IntVar(&flagSavesLimit, "limit", 10, "Number of runs to show")
	savesCmd.Flags().StringVar(&flagClear, "clear", "", "Delete the saved position and runs of a scene")
}

func runSaves(_ *cobra.Command, _ []string) {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagClear != "" {
		if err := clearScene(store, flagClear); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared saves for %s\n", flagClear)
		return
	}

	if err := printSaves(os.Stdout, store, flagSavesScene, flagSavesLimit); err != nil {
		fail("%v", err)
	}
}

// clearScene forgets everything stored for a scene.
func clearScene(store *storage.Store, sceneID string) error {
	if err := store.ClearPosition(sceneID); err != nil {
		return err
	}
	return store.ClearRuns(sceneID)
}

// printSaves writes positions and recent runs as tables.
func printSaves(w io.Writer, store *storage.Store, sceneID string, limit int) error {
	positions, err := store.AllPositions()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Saved positions:")
	if len(positions) == 0 {
		fmt.Fprintln(w, "  none")
	} else {
		rows := make([]table.Row, len(positions))
		for i, p := range positions {
			rows[i] = table.Row{
				p.SceneID,
				p.Body,
				fmt.Sprintf("%d,%d", p.X, p.Y),
				p.UpdatedAt.Format("Jan 02 15:04"),
			}
		}
		fmt.Fprintln(w, staticTable([]table.Column{
			{Title: "Scene", Width: 12},
			{Title: "Body", Width: 10},
			{Title: "Position", Width: 10},
			{Title: "Saved", Width: 14},
		}, rows))
	}
	fmt.Fprintln(w)

	runs, err := store.RecentRuns(sceneID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent runs:")
	if len(runs) == 0 {
		fmt.Fprintln(w, "  none")
		return nil
	}

	columns := append([]table.Column{{Title: "Scene", Width: 12}}, tui.RunColumns()...)
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = append(table.Row{r.SceneID}, tui.RunRow(r)...)
	}
	fmt.Fprintln(w, staticTable(columns, rows))
	return nil
}

// staticTable renders a table sized to fit every row, without a cursor.
func staticTable(columns []table.Column, rows []table.Row) string {
	styles := tui.TableStyles()
	styles.Selected = styles.Cell

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles),
	)
	return t.View()
}
