package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/juparave/smartdeploy/internal/changes"
	"github.com/juparave/smartdeploy/internal/config"
	"github.com/juparave/smartdeploy/internal/describe"
	"github.com/juparave/smartdeploy/internal/domain"
	apperrors "github.com/juparave/smartdeploy/internal/errors"
	"github.com/juparave/smartdeploy/internal/git"
	"github.com/juparave/smartdeploy/internal/ui"
	"github.com/sirupsen/logrus"
)

// VCS is the version-control service the publish sequence runs against
type VCS interface {
	changes.Source
	HasRemote(repoPath, remote string) (bool, error)
	DiffStat(ctx context.Context, repoPath string) (domain.DiffStat, error)
	StageAll(ctx context.Context, repoPath string) error
	Commit(ctx context.Context, repoPath, message string) error
	Push(ctx context.Context, repoPath string) error
	PushSetUpstream(ctx context.Context, repoPath, remote, branch string) error
	CurrentBranch(repoPath string) (string, error)
	RemoteURL(repoPath, remote string) (string, error)
}

// Describer writes the commit message for a change set
type Describer interface {
	Describe(ctx context.Context, changes []domain.ChangeRecord, stat domain.DiffStat) (string, error)
}

const timestampLayout = "02/01/2006 às 15:04:05"

// Runner orchestrates the stage, describe, commit and push flow
type Runner struct {
	config    *config.Config
	logger    *logrus.Logger
	vcs       VCS
	describer Describer
	out       *ui.Printer
	now       func() time.Time
}

// NewRunner creates a new Runner backed by the git CLI
func NewRunner(cfg *config.Config, logger *logrus.Logger, out io.Writer) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
		vcs:    git.NewClient(logger),
		out:    ui.New(out),
		now:    time.Now,
		// describer initialized in Run() after validation
	}
}

// WithVCS replaces the version-control backend
func (r *Runner) WithVCS(vcs VCS) *Runner {
	r.vcs = vcs
	return r
}

// WithDescriber replaces the message writer
func (r *Runner) WithDescriber(d Describer) *Runner {
	r.describer = d
	return r
}

// Run executes the full publish pipeline. A clean working tree is not an
// error: the returned Deployment simply has no changes.
func (r *Runner) Run(ctx context.Context) (*domain.Deployment, error) {
	startTime := r.now()

	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dir := r.config.ProjectDir
	dep := &domain.Deployment{
		Date:    startTime,
		Project: filepath.Base(dir),
		Dir:     dir,
		DryRun:  r.config.DryRun,
	}
	log := r.logger.WithField("project", dep.Project)

	r.out.Banner(dep.Project, dir, startTime.Format(timestampLayout))

	// Step 1: Preconditions
	r.out.Step("Verificando repositório...")
	if !r.vcs.IsRepository(dir) {
		return nil, apperrors.NewNotARepository(dir)
	}
	r.out.OK("Repositório Git detectado")

	ok, err := r.vcs.HasRemote(dir, r.config.Remote)
	if err != nil || !ok {
		noRemote := apperrors.NewNoRemoteConfigured(r.config.Remote)
		noRemote.Err = err
		return nil, noRemote
	}
	r.out.OK("Repositório remoto encontrado")

	// Step 2: Collect changes
	r.out.Step("Analisando alterações...")
	dep.Changes, err = changes.Collect(ctx, r.vcs, dir)
	if err != nil {
		return nil, fmt.Errorf("collecting changes: %w", err)
	}
	log.Debugf("Found %d changed paths", len(dep.Changes))

	if !dep.HasChanges() {
		r.out.Warn("Nenhuma alteração detectada. Nada para publicar!")
		return dep, nil
	}

	r.out.Changes(ui.KindNew, dep.Filter(domain.Status.IsNew))
	r.out.Changes(ui.KindModified, dep.Filter(isModified))
	r.out.Changes(ui.KindDeleted, dep.Filter(isDeleted))

	dep.Stat, err = r.vcs.DiffStat(ctx, dir)
	if err != nil {
		log.WithError(err).Warn("Could not read diff stats")
	} else if !dep.Stat.IsZero() {
		r.out.Muted(fmt.Sprintf("  %s linhas", dep.Stat))
	}
	r.out.OK(fmt.Sprintf("%d arquivo(s) com mudanças", dep.FileCount()))

	// Step 3: Commit message
	r.out.Step("Gerando descrição automática...")
	dep.Message, err = r.message(ctx, dep)
	if err != nil {
		return nil, fmt.Errorf("generating commit message: %w", err)
	}
	r.out.Println("")
	r.out.Commit("📝 Commit:", dep.Message)

	if r.config.DryRun {
		r.out.Warn("Modo dry-run: nada foi publicado")
		return dep, nil
	}

	// Step 4: Stage
	r.out.Step("Preparando arquivos (git add)...")
	if err := r.vcs.StageAll(ctx, dir); err != nil {
		return nil, apperrors.NewStageFailure(err)
	}
	r.out.OK("Todos os arquivos adicionados")

	// Step 5: Commit
	r.out.Step("Criando commit...")
	if err := r.vcs.Commit(ctx, dir, dep.Message); err != nil {
		return nil, apperrors.NewCommitFailure(err)
	}
	r.out.OK("Commit criado com sucesso")

	// Step 6: Push
	r.out.Step("Publicando no GitHub...")
	if err := r.push(ctx, dep); err != nil {
		return nil, err
	}

	r.summary(dep)
	log.Infof("Deploy complete in %s", r.now().Sub(startTime).Round(time.Millisecond))

	return dep, nil
}

func (r *Runner) message(ctx context.Context, dep *domain.Deployment) (string, error) {
	if r.config.Override != "" {
		return r.config.Override, nil
	}

	if r.describer == nil {
		r.describer = r.newDescriber(ctx)
	}
	return r.describer.Describe(ctx, dep.Changes, dep.Stat)
}

func (r *Runner) newDescriber(ctx context.Context) Describer {
	if r.config.Message.Provider == config.ProviderHeuristic {
		return describe.Heuristic{}
	}

	llm, err := describe.NewLLM(ctx, r.config.Message, r.logger)
	if err != nil {
		r.logger.WithError(err).Warn("Language model unavailable, using heuristic messages")
		return describe.Heuristic{}
	}
	return llm
}

// push publishes the commit; a failed plain push is retried exactly once
// with an explicit upstream branch
func (r *Runner) push(ctx context.Context, dep *domain.Deployment) error {
	dir := r.config.ProjectDir

	err := r.vcs.Push(ctx, dir)
	if err == nil {
		dep.Branch, _ = r.vcs.CurrentBranch(dir)
		return nil
	}
	r.logger.WithError(err).Debug("Plain push failed, setting upstream")

	branch, berr := r.vcs.CurrentBranch(dir)
	if berr != nil {
		r.logger.WithError(berr).Debug("Could not read current branch")
	}
	if branch == "" {
		branch = r.config.FallbackBranch
	}
	dep.Branch = branch

	r.out.Warn(fmt.Sprintf("Configurando upstream %s/%s...", r.config.Remote, branch))
	if err := r.vcs.PushSetUpstream(ctx, dir, r.config.Remote, branch); err != nil {
		return apperrors.NewPushFailure(err)
	}
	dep.SetUpstream = true

	return nil
}

func (r *Runner) summary(dep *domain.Deployment) {
	r.out.Rule()
	r.out.Println("")
	r.out.Headline("  ✅ PUBLICADO COM SUCESSO!")
	r.out.Println("")
	r.out.Commit("📝 Commit: ", dep.Message)
	r.out.Println(fmt.Sprintf("  📁 Projeto: %s", dep.Project))
	r.out.Println(fmt.Sprintf("  📂 %d arquivo(s) atualizado(s)", dep.FileCount()))
	if dep.Branch != "" {
		branch := fmt.Sprintf("  🌿 Branch: %s/%s", r.config.Remote, dep.Branch)
		if dep.SetUpstream {
			branch += " (upstream configurado)"
		}
		r.out.Println(branch)
	}

	url, err := r.vcs.RemoteURL(dep.Dir, r.config.Remote)
	if err != nil {
		r.logger.WithError(err).Debug("Could not read remote URL")
		return
	}
	dep.RemoteURL = url

	if repo, ok := domain.ParseGitHubRemote(dep.RemoteURL); ok {
		r.out.Println("")
		r.out.Println(fmt.Sprintf("  🌐 GitHub:       %s", repo.URL()))
		r.out.Println(fmt.Sprintf("  🚀 GitHub Pages: %s", repo.PagesURL()))
		r.out.Println("")
		r.out.Muted("  O site estará atualizado em ~2 minutos.")
	}
}

func isModified(s domain.Status) bool {
	return s == domain.StatusModified || s == domain.StatusRenamed || s == domain.StatusCopied
}

func isDeleted(s domain.Status) bool {
	return s == domain.StatusDeleted
}
