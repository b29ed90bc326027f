package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vibetask/internal/catalog"
	"vibetask/internal/clipboard"
	"vibetask/internal/exitcode"
	"vibetask/internal/model"
	"vibetask/internal/notify"
	"vibetask/internal/prompt"
	"vibetask/internal/render"
	"vibetask/internal/store"
	"vibetask/internal/tracker"
)

// dueDateLayout is the accepted input format for due dates, local time.
const dueDateLayout = "2006-01-02 15:04"

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	filePath    string
	catalogPath string
	copyReport  bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "vibetask",
		Short: "A CLI tool to track tasks, categories and time spent.",
		Long:  `Vibetask is a command-line task tracker. It records tasks with priority, status, due dates, categories and time-tracking sessions in a local JSON file.`,
	}

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a new task.",
		Long:  `Interactively collects a title, optional description, priority and optional due date, creates the task and then offers category assignment.`,
		Run:   runAddCommand,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List all tasks.",
		Run:   runListCommand,
	}

	completeCmd = &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as complete.",
		Args:  cobra.ExactArgs(1),
		Run:   runCompleteCommand,
	}

	statusCmd = &cobra.Command{
		Use:   "status <id>",
		Short: "Update a task's status.",
		Args:  cobra.ExactArgs(1),
		Run:   runStatusCommand,
	}

	deleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task.",
		Args:  cobra.ExactArgs(1),
		Run:   runDeleteCommand,
	}

	addCategoriesCmd = &cobra.Command{
		Use:   "add-categories <id>",
		Short: "Assign categories to a task.",
		Long:  `Offers the category catalog for multi-selection and replaces the task's categories with the selected subset.`,
		Args:  cobra.ExactArgs(1),
		Run:   runAddCategoriesCommand,
	}

	startTimeCmd = &cobra.Command{
		Use:   "start-time <id>",
		Short: "Start time tracking for a task.",
		Args:  cobra.ExactArgs(1),
		Run:   runStartTimeCommand,
	}

	stopTimeCmd = &cobra.Command{
		Use:   "stop-time <id>",
		Short: "Stop time tracking for a task.",
		Args:  cobra.ExactArgs(1),
		Run:   runStopTimeCommand,
	}

	timeReportCmd = &cobra.Command{
		Use:   "time-report <id>",
		Short: "Show the time tracking summary for a task.",
		Args:  cobra.ExactArgs(1),
		Run:   runTimeReportCommand,
	}

	checkNotificationsCmd = &cobra.Command{
		Use:   "check-notifications",
		Short: "Check for due tasks and send desktop notifications.",
		Run:   runCheckNotificationsCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UserError)
	}
}

func init() {
	// Persistent flags available to all subcommands. Empty values mean
	// the per-user defaults under ~/.config/vibetask.
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "", "Path to the JSON task file.")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "categories", "", "Path to the YAML category catalog.")

	timeReportCmd.Flags().BoolVar(&copyReport, "copy", false, "Also copy the report to the clipboard.")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(addCategoriesCmd)
	rootCmd.AddCommand(startTimeCmd)
	rootCmd.AddCommand(stopTimeCmd)
	rootCmd.AddCommand(timeReportCmd)
	rootCmd.AddCommand(checkNotificationsCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}

// --- Command Execution Logic ---

func runAddCommand(cmd *cobra.Command, args []string) {
	tr := openTracker()
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	title, err := p.Input("✨ Task title")
	if err != nil || title == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "A task title is required.")
		os.Exit(exitcode.UserError)
	}

	description, err := p.Input("🚀 Description (optional)")
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not read description.")
		os.Exit(exitcode.UserError)
	}

	priorityIdx, err := p.Select("🔥 Select priority", model.PriorityNames(), 1)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not read priority selection.")
		os.Exit(exitcode.UserError)
	}

	dueText, err := p.Input("📅 Due date (YYYY-MM-DD HH:MM, optional)")
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not read due date.")
		os.Exit(exitcode.UserError)
	}
	var dueDate *time.Time
	if dueText != "" {
		due, err := time.ParseInLocation(dueDateLayout, dueText, time.Local)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Invalid due date %q, expected YYYY-MM-DD HH:MM.\n", dueText)
			os.Exit(exitcode.UserError)
		}
		dueDate = &due
	}

	task, err := tr.Add(tracker.AddParams{
		Title:       title,
		Description: description,
		Priority:    model.PriorityFromIndex(priorityIdx),
		DueDate:     dueDate,
	})
	if err != nil {
		slog.Error("failed to add task", "error", err)
		os.Exit(exitcode.StorageError)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✅ Task added successfully!")

	// Category assignment chains directly off task creation.
	assignCategories(cmd, tr, p, task.ID)
}

func runListCommand(cmd *cobra.Command, args []string) {
	tr := openTracker()
	render.Tasks(cmd.OutOrStdout(), tr.Tasks())
}

func runCompleteCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()

	if err := tr.Complete(id); err != nil {
		exitOperation(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %d marked as complete!\n", id)
}

func runStatusCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	// Fail on unknown ids before prompting.
	if _, err := tr.Get(id); err != nil {
		exitOperation(cmd, err)
	}

	idx, err := p.Select("🚀 Select new status", model.StatusNames(), 0)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not read status selection.")
		os.Exit(exitcode.UserError)
	}

	if err := tr.SetStatus(id, model.StatusFromIndex(idx)); err != nil {
		exitOperation(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Task status updated!")
}

func runDeleteCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()

	if err := tr.Delete(id); err != nil {
		exitOperation(cmd, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Task %d deleted!\n", id)
}

func runAddCategoriesCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	if _, err := tr.Get(id); err != nil {
		exitOperation(cmd, err)
	}
	assignCategories(cmd, tr, p, id)
}

func runStartTimeCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()

	err := tr.StartTimer(id)
	switch {
	case errors.Is(err, tracker.ErrTimerRunning):
		fmt.Fprintln(cmd.OutOrStdout(), "Time tracking is already running for this task!")
		return
	case err != nil:
		exitOperation(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "⏰ Time tracking started!")
}

func runStopTimeCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()

	_, err := tr.StopTimer(id)
	switch {
	case errors.Is(err, tracker.ErrTimerNotRunning):
		fmt.Fprintln(cmd.OutOrStdout(), "No active time tracking for this task!")
		return
	case err != nil:
		exitOperation(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "⏰ Time tracking stopped!")
}

func runTimeReportCommand(cmd *cobra.Command, args []string) {
	id := parseID(cmd, args[0])
	tr := openTracker()

	task, err := tr.Get(id)
	if err != nil {
		exitOperation(cmd, err)
	}

	now := time.Now()
	render.TimeReport(cmd.OutOrStdout(), task, now)

	if copyReport {
		var buf bytes.Buffer
		render.TimeReportPlain(&buf, task, now)
		if err := clipboard.CopyText(buf.String()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not copy report to clipboard: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "📋 Report copied to clipboard.")
	}
}

func runCheckNotificationsCommand(cmd *cobra.Command, args []string) {
	tr := openTracker()

	sent, failures, err := tr.CheckNotifications(notify.Desktop{})
	for _, fail := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to send notification: %v\n", fail)
	}
	if err != nil {
		slog.Error("failed to persist notification times", "error", err)
		os.Exit(exitcode.StorageError)
	}
	for _, reminder := range sent {
		fmt.Fprintf(cmd.OutOrStdout(), "🔔 %s\n", reminder.Body)
	}
}

// --- Helper Functions ---

// openTracker loads the task collection from the configured file,
// exiting with a diagnostic on any storage failure.
func openTracker() *tracker.Tracker {
	path := filePath
	if path == "" {
		p, err := store.DefaultPath()
		if err != nil {
			slog.Error("failed to locate task file", "error", err)
			os.Exit(exitcode.StorageError)
		}
		path = p
	}

	tr, err := tracker.Open(store.New(path))
	if err != nil {
		slog.Error("failed to load task file", "error", err, "path", path)
		os.Exit(exitcode.StorageError)
	}
	return tr
}

// loadCatalog reads the category catalog from the configured file.
func loadCatalog() []model.Category {
	path := catalogPath
	if path == "" {
		p, err := catalog.DefaultPath()
		if err != nil {
			slog.Error("failed to locate category catalog", "error", err)
			os.Exit(exitcode.StorageError)
		}
		path = p
	}

	categories, err := catalog.Load(path)
	if err != nil {
		slog.Error("failed to load category catalog", "error", err, "path", path)
		os.Exit(exitcode.StorageError)
	}
	return categories
}

// assignCategories runs the multi-select category flow for an existing task.
func assignCategories(cmd *cobra.Command, tr *tracker.Tracker, p prompt.Prompter, id int) {
	categories := loadCatalog()

	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = fmt.Sprintf("%s %s", c.Emoji, c.Name)
	}

	selected, err := p.MultiSelect("🏷️ Select categories", labels)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Could not read category selection.")
		os.Exit(exitcode.UserError)
	}

	chosen := make([]model.Category, 0, len(selected))
	for _, idx := range selected {
		chosen = append(chosen, categories[idx])
	}

	if err := tr.SetCategories(id, chosen); err != nil {
		exitOperation(cmd, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Categories updated!")
}

// parseID parses a positive integer task id argument.
func parseID(cmd *cobra.Command, arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid task id %q.\n", arg)
		os.Exit(exitcode.UserError)
	}
	return id
}

// exitOperation maps an operation error to a message and exit code.
func exitOperation(cmd *cobra.Command, err error) {
	if errors.Is(err, tracker.ErrNotFound) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Task not found!")
		os.Exit(exitcode.UserError)
	}
	slog.Error("operation failed", "error", err)
	os.Exit(exitcode.StorageError)
}
