package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/formrunner/formrunner/internal/artifacts"
	"github.com/formrunner/formrunner/internal/batch"
	"github.com/formrunner/formrunner/internal/browser"
	"github.com/formrunner/formrunner/internal/config"
	"github.com/formrunner/formrunner/internal/domain"
	"github.com/formrunner/formrunner/internal/form"
	"github.com/formrunner/formrunner/internal/loader"
	"github.com/formrunner/formrunner/internal/notify"
	"github.com/formrunner/formrunner/internal/run"
	"github.com/formrunner/formrunner/internal/runlog"
	"github.com/formrunner/formrunner/internal/watch"
	"github.com/formrunner/formrunner/tui"
	"github.com/formrunner/formrunner/web/api"
)

var (
	runURL       string
	runData      string
	runForm      string
	runJob       string
	runHeadless  bool
	runTimeoutMS float64

	historyStatus string
	historyURL    string
	historyLimit  int

	batchJobsDir  string
	batchSchedule string

	watchDir string

	servePort int
)

func init() {
	// run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Fill and submit a form once",
		RunE:  runRun,
	}
	runCmd.Flags().StringVar(&runURL, "url", "", "form URL (overrides form config)")
	runCmd.Flags().StringVar(&runData, "data", "data.json", "field data file")
	runCmd.Flags().StringVar(&runForm, "config", "", "form config file")
	runCmd.Flags().StringVar(&runJob, "job", "", "bundled job file (form + fields)")
	runCmd.Flags().BoolVar(&runHeadless, "headless", true, "run browser headless")
	runCmd.Flags().Float64Var(&runTimeoutMS, "timeout", 0, "wait timeout in milliseconds")
	rootCmd.AddCommand(runCmd)

	// validate command
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check field data and form config without opening a browser",
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVar(&runData, "data", "data.json", "field data file")
	validateCmd.Flags().StringVar(&runForm, "config", "", "form config file")
	validateCmd.Flags().StringVar(&runJob, "job", "", "bundled job file")
	rootCmd.AddCommand(validateCmd)

	// history command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE:  runHistory,
	}
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "filter by status (success|error)")
	historyCmd.Flags().StringVar(&historyURL, "url", "", "filter by form URL")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum rows")
	rootCmd.AddCommand(historyCmd)

	// batch command
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every job in a directory",
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs", "", "jobs directory (defaults to config jobs_dir)")
	batchCmd.Flags().StringVar(&batchSchedule, "schedule", "", "schedule TOML; keeps running batches on their cron")
	batchCmd.Flags().BoolVar(&runHeadless, "headless", true, "run browser headless")
	rootCmd.AddCommand(batchCmd)

	// watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and run jobs as they appear",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (defaults to config jobs_dir)")
	watchCmd.Flags().BoolVar(&runHeadless, "headless", true, "run browser headless")
	rootCmd.AddCommand(watchCmd)

	// serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the run history web UI",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on")
	rootCmd.AddCommand(serveCmd)

	// tui command
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse run history in the terminal",
		RunE:  runTUI,
	}
	rootCmd.AddCommand(tuiCmd)

	// install command
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Download the browser driver and Chromium",
		RunE: func(cmd *cobra.Command, args []string) error {
			return browser.Install()
		},
	}
	rootCmd.AddCommand(installCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Flags beat file and environment
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = runHeadless
	}
	if cmd.Flags().Changed("timeout") && runTimeoutMS > 0 {
		cfg.Browser.TimeoutMS = runTimeoutMS
	}
	return cfg, nil
}

// newService builds a run service backed by a real browser
func newService(cfg *config.Config) (*run.Service, *runlog.Store, error) {
	dir, err := artifacts.New(cfg.General.OutputDir)
	if err != nil {
		return nil, nil, err
	}

	store, err := runlog.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return nil, nil, err
	}

	notifier := notify.NewMultiNotifier(
		notify.NewDesktopNotifier(cfg.Notifications.Desktop),
		notify.NewSlackNotifier(cfg.Notifications.SlackWebhook),
	)

	factory := func(headless bool, timeoutMS float64) (form.Page, func() error, error) {
		session, err := browser.NewSession(browser.Options{
			Headless: headless,
			Timeout:  time.Duration(timeoutMS) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		return session.Page(), func() error { session.Close(); return nil }, nil
	}

	logf := func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	}

	return run.NewService(cfg, store, dir, notifier, factory, logf), store, nil
}

// loadRunInputs resolves the form config and fields from the flag set
func loadRunInputs() (*domain.FormConfig, []domain.FieldSpec, error) {
	if runJob != "" {
		job, err := loader.LoadJob(runJob)
		if err != nil {
			return nil, nil, err
		}
		return &job.Form, job.Fields, nil
	}

	fields, err := loader.LoadFields(runData)
	if err != nil {
		return nil, nil, err
	}

	formCfg := &domain.FormConfig{}
	if runForm != "" {
		formCfg, err = loader.LoadForm(runForm)
		if err != nil {
			return nil, nil, err
		}
	}
	if runURL != "" {
		formCfg.URL = runURL
	}
	if err := formCfg.Validate(); err != nil {
		return nil, nil, err
	}
	return formCfg, fields, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	formCfg, fields, err := loadRunInputs()
	if err != nil {
		return err
	}

	svc, store, err := newService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := svc.Execute(*formCfg, fields)
	if err != nil {
		if result != nil && result.Screenshot != "" {
			fmt.Printf("error screenshot: %s\n", result.Screenshot)
		}
		return err
	}

	fmt.Printf("submitted %s in %s\n", result.URL, result.Duration.Round(time.Millisecond))
	if result.Screenshot != "" {
		fmt.Printf("screenshot: %s\n", result.Screenshot)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	if runJob != "" {
		job, err := loader.LoadJob(runJob)
		if err != nil {
			return err
		}
		fmt.Printf("job %q: %d fields, target %s\n", job.Name, len(job.Fields), job.Form.URL)
		return nil
	}

	fields, err := loader.LoadFields(runData)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d fields\n", runData, len(fields))

	if runForm != "" {
		formCfg, err := loader.LoadForm(runForm)
		if err != nil {
			return err
		}
		fmt.Printf("%s: target %s\n", runForm, formCfg.URL)
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := runlog.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.ListResults(runlog.ListOptions{
		Status: domain.RunStatus(historyStatus),
		URL:    historyURL,
		Limit:  historyLimit,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tURL\tDURATION\tERROR")
	for _, r := range results {
		errMsg := r.Error
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.Status, r.URL,
			r.Duration.Round(time.Millisecond), errMsg)
	}
	w.Flush()

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svc, store, err := newService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	runJobsDir := func(dir string) error {
		jobs, err := loader.LoadJobsDir(dir)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			fmt.Printf("no jobs in %s\n", dir)
			return nil
		}
		failed := svc.ExecuteAll(jobs)
		fmt.Printf("ran %d jobs, %d failed\n", len(jobs), failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
		}
		return nil
	}

	// One-shot mode
	if batchSchedule == "" {
		dir := batchJobsDir
		if dir == "" {
			dir = cfg.General.JobsDir
		}
		return runJobsDir(dir)
	}

	// Scheduled mode
	schedCfg, err := batch.LoadScheduleConfig(batchSchedule)
	if err != nil {
		return err
	}
	if len(schedCfg.Batches) == 0 {
		return fmt.Errorf("no batches defined in %s", batchSchedule)
	}

	sched, err := batch.NewScheduler(schedCfg.Batches, func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	})
	if err != nil {
		return err
	}

	for _, name := range sched.ListBatches() {
		fmt.Printf("batch %q next run: %s\n", name, sched.NextRun(name).Format(time.RFC3339))
	}

	sched.Start(func(b batch.BatchConfig) error {
		fmt.Printf("starting batch %q\n", b.Name)
		err := runJobsDir(b.JobsDir)

		if b.NotifyOnComplete {
			n := notify.Notification{
				Title:   fmt.Sprintf("Batch %q finished", b.Name),
				Message: "all jobs succeeded",
				Type:    notify.NotifySuccess,
			}
			if err != nil {
				n.Message = err.Error()
				n.Type = notify.NotifyError
			}
			if nerr := svc.Notify(n); nerr != nil {
				fmt.Fprintf(os.Stderr, "batch notification failed: %v\n", nerr)
			}
		}
		return err
	})
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := watchDir
	if dir == "" {
		dir = cfg.General.JobsDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	svc, store, err := newService(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	watcher, err := watch.NewJobWatcher(dir, func(files []string) {
		for _, file := range files {
			job, err := loader.LoadJob(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", file, err)
				continue
			}
			if _, err := svc.ExecuteJob(job); err != nil {
				fmt.Fprintf(os.Stderr, "job %q failed: %v\n", job.Name, err)
			}
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("watching %s for job files\n", dir)
	watcher.Start(context.Background())
	select {} // Run until interrupted
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := runlog.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = cfg.Web.Port
	}

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, port)
	server := api.NewServer(store, cfg.General.OutputDir, addr)

	fmt.Printf("Starting web UI at http://%s\n", addr)
	return server.Start()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := runlog.New(config.ExpandPath(cfg.General.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	refresh := func() ([]*domain.RunResult, error) {
		return store.ListResults(runlog.ListOptions{})
	}

	runs, err := refresh()
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}

	model := tui.NewModel(runs, refresh)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
