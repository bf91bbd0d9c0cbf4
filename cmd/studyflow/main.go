// Package main provides the CLI entrypoint for studyflow.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/studyflow/internal/achievement"
	"github.com/verte-zerg/studyflow/internal/config"
	"github.com/verte-zerg/studyflow/internal/model"
	"github.com/verte-zerg/studyflow/internal/stats"
	"github.com/verte-zerg/studyflow/internal/store"
	"github.com/verte-zerg/studyflow/internal/studyplan"
	"github.com/verte-zerg/studyflow/internal/tui"
)

const defaultHistoryLast = 10

var (
	dbPath     string
	configPath string

	appView       string
	appSubject    string
	appFocus      int
	appShortBreak int
	appLongBreak  int
	appCheckpoint int
	appTarget     int

	diagnosticClear bool

	statsLast  int
	statsWidth int

	planWidth int
	planWait  bool

	profileName       string
	profileEmail      string
	profileUniversity string
	profileCareer     string
	profileCurrent    float64
	profileTarget     float64
	profilePlan       string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studyflow",
		Short:         "Terminal study habit coach",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runAppCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config path (default: XDG config dir)")

	rootCmd.Flags().StringVar(&appView, "view", "", "view to open first ("+strings.Join(tui.Views(), ", ")+")")
	rootCmd.Flags().StringVar(&appSubject, "subject", config.DefaultSubject, "default session subject")
	rootCmd.Flags().IntVar(&appFocus, "focus", config.DefaultFocusMinutes, "focus phase length in minutes")
	rootCmd.Flags().IntVar(&appShortBreak, "short-break", config.DefaultShortBreakMinutes, "short break length in minutes")
	rootCmd.Flags().IntVar(&appLongBreak, "long-break", config.DefaultLongBreakMinutes, "long break length in minutes")
	rootCmd.Flags().IntVar(&appCheckpoint, "checkpoint", config.DefaultCheckpointMinutes, "minutes between mood checkpoints")
	rootCmd.Flags().IntVar(&appTarget, "target", config.DefaultTargetMinutes, "session goal in minutes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDiagnosticCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newAchievementsCmd())
	rootCmd.AddCommand(newProfileCmd())

	return rootCmd
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func resolvedDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.DefaultDBPath()
}

func loadConfig() (model.Config, error) {
	fileCfg, err := config.LoadConfig(resolvedConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := fileCfg.Resolve()
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(resolvedDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	return st, closeFn, nil
}

func runAppCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyAppFlags(cmd, &cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return runApp(cfg, appView)
}

// applyAppFlags lets explicitly set flags override the file config.
func applyAppFlags(cmd *cobra.Command, cfg *model.Config) {
	applyStringConfig(cmd, "subject", &cfg.Subject, &appSubject)
	applyMinutesConfig(cmd, "focus", &cfg.Timer.Focus, appFocus)
	applyMinutesConfig(cmd, "short-break", &cfg.Timer.ShortBreak, appShortBreak)
	applyMinutesConfig(cmd, "long-break", &cfg.Timer.LongBreak, appLongBreak)
	applyMinutesConfig(cmd, "checkpoint", &cfg.Timer.Checkpoint, appCheckpoint)
	applyMinutesConfig(cmd, "target", &cfg.Timer.Target, appTarget)
}

func runApp(cfg model.Config, view string) error {
	closeLog := setupLogging()
	defer closeLog()

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	app := tui.NewApp(st, cfg, tui.Options{Start: view})
	defer app.Close()
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// setupLogging sends the standard logger to the log file while the TUI owns the terminal.
func setupLogging() func() {
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "studyflow")
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() {
		_ = f.Close()
	}
}

func newDiagnosticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostic",
		Short: "Take the study habit questionnaire",
		Args:  cobra.NoArgs,
		RunE:  runDiagnosticCmd,
	}
	cmd.Flags().BoolVar(&diagnosticClear, "clear", false, "discard saved answers and start over")
	return cmd
}

func runDiagnosticCmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if diagnosticClear {
		st, closeStore, err := openStore()
		if err != nil {
			return err
		}
		err = st.ClearDiagnostic(context.Background())
		closeStore()
		if err != nil {
			return fmt.Errorf("failed to clear answers: %w", err)
		}
		logErrln("Cleared saved answers.")
	}
	return runApp(cfg, "diagnostic")
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print study statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", defaultHistoryLast, "limit history to last N sessions (0 for all)")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "chart width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	now := time.Now()
	report, err := stats.BuildReport(context.Background(), st, now)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSubjects(out, report.Subjects); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Sessions) > 0 {
		if _, err := fmt.Fprintln(out, "Daily hours"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderDailyChart(out, report.Daily, now, statsWidth, false); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintln(out, ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.RenderHistory(out, report.Sessions, statsLast); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <topic>",
		Short: "Print a study plan for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlanCmd,
	}
	cmd.Flags().IntVar(&planWidth, "width", 80, "wrap width (0 disables wrapping)")
	cmd.Flags().BoolVar(&planWait, "wait", false, "apply the configured generation delay")
	return cmd
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}
	gen := studyplan.Generator{}
	if planWait {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		gen.Delay = cfg.Coach.PlanDelay
	}
	plan, err := gen.Generate(cmd.Context(), topic)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}
	if err := studyplan.Render(cmd.OutOrStdout(), plan, planWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and unlock any that are due",
		Args:  cobra.NoArgs,
		RunE:  runAchievementsCmd,
	}
}

func runAchievementsCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	fresh, err := achievement.NewChecker(st, nil).Check(ctx)
	if err != nil {
		return fmt.Errorf("failed to check achievements: %w", err)
	}
	for _, a := range fresh {
		logErrf("Unlocked: %s %s\n", a.Icon, a.Name)
	}
	unlocked, err := st.GetUnlockedAchievements(ctx)
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}
	have := make(map[string]model.Achievement, len(unlocked))
	for _, a := range unlocked {
		have[a.ID] = a
	}
	out := cmd.OutOrStdout()
	for _, a := range achievement.Catalog() {
		line := fmt.Sprintf("🔒 %s - %s", a.Name, a.Description)
		if got, ok := have[a.ID]; ok {
			line = fmt.Sprintf("%s %s - %s (%s)", got.Icon, got.Name, got.Description, got.UnlockedAt.Local().Format("2006-01-02"))
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the stored profile",
		Args:  cobra.NoArgs,
		RunE:  runProfileCmd,
	}
	cmd.Flags().StringVar(&profileName, "name", "", "display name")
	cmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	cmd.Flags().StringVar(&profileUniversity, "university", "", "university")
	cmd.Flags().StringVar(&profileCareer, "career", "", "career")
	cmd.Flags().Float64Var(&profileCurrent, "current", 0, "current average (0-20)")
	cmd.Flags().Float64Var(&profileTarget, "target", 0, "target average (0-20)")
	cmd.Flags().StringVar(&profilePlan, "plan", "", "plan tier (Bronze, Silver, Gold)")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, _ []string) error {
	patch, err := profilePatchFromFlags(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if patch != (model.ProfilePatch{}) {
		if err := st.SaveProfile(ctx, patch); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}
	profile, ok, err := st.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if !ok {
		logErrln("No profile yet. Run: studyflow diagnostic")
		return nil
	}
	lines := []string{
		fmt.Sprintf("Name: %s", profile.Name),
		fmt.Sprintf("Email: %s", profile.Email),
		fmt.Sprintf("University: %s", profile.University),
		fmt.Sprintf("Career: %s", profile.Career),
		fmt.Sprintf("Average: %.1f -> %.1f", profile.CurrentAverage, profile.TargetAverage),
		fmt.Sprintf("Plan: %s", profile.Plan),
	}
	if !profile.CreatedAt.IsZero() {
		lines = append(lines, fmt.Sprintf("Since: %s", profile.CreatedAt.Local().Format("2006-01-02")))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// profilePatchFromFlags collects only the flags that were set.
func profilePatchFromFlags(cmd *cobra.Command) (model.ProfilePatch, error) {
	var patch model.ProfilePatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &profileName
	}
	if flags.Changed("email") {
		patch.Email = &profileEmail
	}
	if flags.Changed("university") {
		patch.University = &profileUniversity
	}
	if flags.Changed("career") {
		patch.Career = &profileCareer
	}
	if flags.Changed("current") {
		if profileCurrent < 0 || profileCurrent > 20 {
			return model.ProfilePatch{}, fmt.Errorf("--current must be between 0 and 20")
		}
		patch.CurrentAverage = &profileCurrent
	}
	if flags.Changed("target") {
		if profileTarget < 0 || profileTarget > 20 {
			return model.ProfilePatch{}, fmt.Errorf("--target must be between 0 and 20")
		}
		patch.TargetAverage = &profileTarget
	}
	if flags.Changed("plan") {
		plan, err := parsePlan(profilePlan)
		if err != nil {
			return model.ProfilePatch{}, err
		}
		patch.Plan = &plan
	}
	return patch, nil
}

func parsePlan(raw string) (model.Plan, error) {
	for _, p := range []model.Plan{model.PlanBronze, model.PlanSilver, model.PlanGold} {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown plan %q (available: Bronze, Silver, Gold)", raw)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolvedConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyMinutesConfig(cmd *cobra.Command, name string, target *time.Duration, minutes int) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = time.Duration(minutes) * time.Minute
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# studyflow configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# focus = %d              # Focus phase length in minutes
# short-break = %d         # Short break length in minutes
# long-break = %d         # Long break length in minutes
# long-break-every = %d    # Focus phases before a long break
# checkpoint = %d         # Minutes between mood checkpoints
# target = %d            # Session goal in minutes

[coach]
# achievement-poll = %d   # Seconds between achievement checks
# tip-interval = %d       # Seconds between tip rotations
# analysis-delay = %d   # Diagnostic analysis delay in milliseconds
# plan-delay = %d       # Study plan generation delay in milliseconds

[session]
# subject = %q
`,
		config.DefaultFocusMinutes,
		config.DefaultShortBreakMinutes,
		config.DefaultLongBreakMinutes,
		config.DefaultLongBreakEvery,
		config.DefaultCheckpointMinutes,
		config.DefaultTargetMinutes,
		config.DefaultAchievementPollSeconds,
		config.DefaultTipIntervalSeconds,
		config.DefaultAnalysisDelayMs,
		config.DefaultPlanDelayMs,
		config.DefaultSubject,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
