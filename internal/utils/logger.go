package utils

import (
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

var Log = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      time.DateTime,
	Prefix:          "chaptr",
})

// Init applies the styled level badges. Safe to skip in tests; Log works
// unstyled before it runs.
func Init() {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#2D5A27")).
		Foreground(lipgloss.Color("#B5E8AC")).Bold(true)

	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#8A6D00")).
		Foreground(lipgloss.Color("#FFE873")).Bold(true)

	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#7A1F1F")).
		Foreground(lipgloss.Color("#FFB3B3")).Bold(true)

	styles.Levels[charmlog.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#000000")).
		Foreground(lipgloss.Color("#FF6666")).Bold(true)

	Log.SetStyles(styles)
}
