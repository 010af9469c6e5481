// Package runner wires the workflow engine to its production
// collaborators and drives one generation run for the CLI.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/forgeapps/onboardgen/pkg/ai"
	"github.com/forgeapps/onboardgen/pkg/auth"
	"github.com/forgeapps/onboardgen/pkg/checkpoint"
	"github.com/forgeapps/onboardgen/pkg/output"
	"github.com/forgeapps/onboardgen/pkg/workflow"
)

type Runner struct {
	opts    workflow.Options
	store   *checkpoint.Store
	planner *workflow.Planner
	orch    *workflow.Orchestrator
}

// New resolves paths and wires the store, collaborators, planner and
// orchestrator for one run.
func New(opts workflow.Options) (*Runner, error) {
	specAbs, err := filepath.Abs(opts.SpecPath)
	if err != nil {
		return nil, fmt.Errorf("resolving spec path: %w", err)
	}
	opts.SpecPath = specAbs

	if opts.OutputPath == "" {
		base := strings.TrimSuffix(filepath.Base(specAbs), filepath.Ext(specAbs))
		opts.OutputPath = base + "-app"
	}
	outAbs, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}
	opts.OutputPath = outAbs

	store, err := checkpoint.NewStore(viper.GetString("state_dir"))
	if err != nil {
		return nil, err
	}

	authMgr, err := auth.NewManager(viper.GetString("credentials_file"))
	if err != nil {
		return nil, err
	}

	provider := &credentialedProvider{
		mgr: authMgr,
		cfg: ai.AnthropicConfig{
			APIURL: viper.GetString("api_url"),
			Model:  viper.GetString("model"),
		},
	}
	ops := ai.NewOps(provider, ai.DefaultRetryPolicy())

	collab := &workflow.Collaborators{
		Auth:     authMgr,
		Loader:   workflow.DefaultLoader(),
		AI:       ops,
		Renderer: workflow.DefaultRenderer(),
		Writer:   output.NewWriter(),
		ReadFile: os.ReadFile,
	}

	var confirm workflow.Confirmer = workflow.AutoConfirm{}
	if !opts.AssumeYes && isatty.IsTerminal(os.Stdin.Fd()) {
		confirm = terminalConfirm{}
	}

	return &Runner{
		opts:    opts,
		store:   store,
		planner: workflow.NewPlanner(store, confirm),
		orch:    workflow.NewOrchestrator(store, collab, progressPrinter(opts.Verbose)),
	}, nil
}

// Run plans the resume decision and executes the workflow. On failure
// it reports the phase, the error, and that the checkpoint was saved.
func (r *Runner) Run(ctx context.Context) error {
	plan, err := r.planner.Plan(r.opts.SpecPath, r.opts)
	if err != nil {
		return err
	}
	if plan.Warning != "" {
		fmt.Println(color.YellowString("⚠️  %s", plan.Warning))
	}

	var cp *checkpoint.Checkpoint
	if plan.ShouldResume {
		cp = plan.Checkpoint
		fmt.Println(color.CyanString("↻ Resuming from phase %d (%s), checkpoint saved %s",
			plan.StartPhase, checkpoint.PhaseName(plan.StartPhase), humanAge(cp.Timestamp)))
	} else {
		hash, err := checkpoint.HashFile(r.opts.SpecPath)
		if err != nil {
			return err
		}
		cp = checkpoint.New(r.opts.SpecPath, r.opts.OutputPath, hash)
	}

	if err := r.orch.Run(ctx, r.opts, cp, planStart(plan)); err != nil {
		if runErr, ok := err.(*workflow.RunError); ok {
			fmt.Println(color.RedString("✗ Phase %d (%s) failed: %s", runErr.Phase, runErr.PhaseName, runErr.Message))
			fmt.Println(color.YellowString("A checkpoint was saved; re-running the same command will resume from this phase."))
			if r.opts.Verbose {
				log.Printf("checkpoint retained at %s", runErr.CheckpointPath)
			}
		}
		return err
	}
	return nil
}

func planStart(plan workflow.Plan) int {
	if plan.StartPhase < checkpoint.PhaseAuthCheck {
		return checkpoint.PhaseAuthCheck
	}
	return plan.StartPhase
}

// progressPrinter reports each phase outcome as it completes.
func progressPrinter(verbose bool) workflow.ProgressFunc {
	return func(phase int, name string, result workflow.PhaseResult) {
		switch {
		case !result.Success:
			// The runner prints failures with full context.
		case result.Outcome == workflow.Ran:
			fmt.Println(color.GreenString("  [%d/7] %s", phase, name))
		default:
			fmt.Println(color.New(color.Faint).Sprintf("  [%d/7] %s — %s", phase, name, result.Outcome))
		}
	}
}

// terminalConfirm asks on the controlling terminal before resuming.
type terminalConfirm struct{}

func (terminalConfirm) ConfirmResume(cp *checkpoint.Checkpoint) (bool, error) {
	fmt.Printf("Found a checkpoint at phase %d (%s) from %s. Resume? [Y/n] ",
		cp.Phase, checkpoint.PhaseName(cp.Phase), humanAge(cp.Timestamp))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}

func humanAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "moments ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

// credentialedProvider defers provider construction until the first
// call, so the API key (or refreshed OAuth token) resolved by AuthCheck
// is the one used.
type credentialedProvider struct {
	mgr   *auth.Manager
	cfg   ai.AnthropicConfig
	inner ai.Provider
}

func (p *credentialedProvider) SendMessage(ctx context.Context, conv ai.Conversation) (string, error) {
	if p.inner == nil {
		creds, err := p.mgr.EnsureCredentials(ctx)
		if err != nil {
			return "", &ai.ProviderError{Kind: ai.KindAuth, Message: err.Error()}
		}
		cfg := p.cfg
		cfg.APIKey = creds.APIKey
		if cfg.APIKey == "" && creds.OAuth != nil {
			cfg.APIKey = creds.OAuth.AccessToken
		}
		inner, err := ai.NewAnthropicProvider(cfg)
		if err != nil {
			return "", err
		}
		p.inner = inner
	}
	return p.inner.SendMessage(ctx, conv)
}
