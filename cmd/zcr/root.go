package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ot-grc/internal/assessment"
	"ot-grc/internal/config"
	"ot-grc/internal/models"
	"ot-grc/internal/server"

	"github.com/spf13/cobra"
)

type cliState struct {
	backend string
	user    string
	role    string

	engine *assessment.Engine
	close  func()
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:          "zcr",
		Short:        "IEC 62443-3-2 risk assessment from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return st.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&st.backend, "backend", "", "assessment store: postgres|sqlite|redis|memory (default: STORE_BACKEND)")
	root.PersistentFlags().StringVar(&st.user, "as", "", "title recorded in stage progress")
	root.PersistentFlags().StringVar(&st.role, "role", "engineer", "role recorded in stage progress")

	root.AddCommand(
		newScoreCmd(st),
		newImportCmd(st),
		newExportCmd(st),
		newCloneCmd(st),
		newStageCmd(st),
	)

	// PostRun не вызывается после ошибки RunE, поэтому закрываем хранилище сами
	for _, c := range root.Commands() {
		if c.RunE != nil {
			c.RunE = st.closing(c.RunE)
		}
	}
	return root
}

type runE func(cmd *cobra.Command, args []string) error

func (s *cliState) closing(fn runE) runE {
	return func(cmd *cobra.Command, args []string) error {
		defer s.shutdown()
		return fn(cmd, args)
	}
}

func (s *cliState) shutdown() {
	if s.close != nil {
		s.close()
		s.close = nil
	}
}

func (s *cliState) open(ctx context.Context) error {
	cfg := config.FromEnv()
	if s.backend != "" {
		cfg.StoreBackend = s.backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kv, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		return err
	}
	s.close = closeStore

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s.engine = assessment.New(ctx, kv, nil, assessment.Options{Logger: logger})
	return nil
}

// ctxWithUser подставляет --as/--role, если они заданы
func (s *cliState) ctxWithUser(ctx context.Context) context.Context {
	if s.user == "" {
		return ctx
	}
	title, role := s.user, s.role
	return assessment.WithUser(ctx, models.UserContext{UserTitle: &title, UserRole: &role})
}

func saveOrWarn(ctx context.Context, w io.Writer, e *assessment.Engine) {
	if err := e.Save(ctx); err != nil {
		fmt.Fprintf(w, "warning: assessment was not saved: %v\n", err)
	}
}
