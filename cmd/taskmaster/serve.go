package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/api/graph"
	apiHandler "github.com/fastygo/taskmaster/api/handler"
	"github.com/fastygo/taskmaster/internal/infrastructure/monitor"
	"github.com/fastygo/taskmaster/internal/infrastructure/storage"
	"github.com/fastygo/taskmaster/internal/middleware"
	"github.com/fastygo/taskmaster/internal/router"
	"github.com/fastygo/taskmaster/internal/services"
	"github.com/fastygo/taskmaster/internal/services/lifecycle"
	"github.com/fastygo/taskmaster/pkg/httpcontext"
	authUC "github.com/fastygo/taskmaster/usecase/auth"
	profileUC "github.com/fastygo/taskmaster/usecase/profile"
	taskUC "github.com/fastygo/taskmaster/usecase/task"
	statusUC "github.com/fastygo/taskmaster/usecase/taskstatus"
)

func serveCmd(a *app) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed-statuses", true, "create the default task statuses when missing")
	return cmd
}

func (a *app) serve(parent context.Context, seed bool) error {
	cfg, zapLogger := a.cfg, a.logger
	if parent == nil {
		parent = context.Background()
	}

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.Context(parent)
	defer stop()
	defer func() {
		if err := manager.Shutdown(context.Background()); err != nil {
			zapLogger.Error("graceful shutdown error", zap.Error(err))
		}
	}()

	docs, err := openStores(appCtx, cfg, manager, zapLogger)
	if err != nil {
		return err
	}
	sessions, err := openSessions(appCtx, cfg, docs, manager, zapLogger)
	if err != nil {
		return err
	}

	mon := monitor.New(append(docs.checks, sessions.checks...), 0, zapLogger)
	mon.Start()
	manager.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})

	if sessions.purger != nil {
		sweeper, err := services.NewSessionSweeper(sessions.purger, cfg.Session.SweepSchedule, zapLogger)
		if err != nil {
			return err
		}
		sweeper.Start()
		manager.Register("session_sweeper", func(ctx context.Context) error {
			sweeper.Stop(ctx)
			return nil
		})
	}

	var presigner profileUC.Presigner
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Presigner(appCtx, cfg.Storage)
		if err != nil {
			return err
		}
		presigner = s3
	} else {
		zapLogger.Warn("S3_BUCKET_NAME not set, profile picture uploads are disabled")
	}

	statusUseCase := statusUC.New(docs.statuses, zapLogger)
	if seed {
		if err := seedDefaultStatuses(appCtx, statusUseCase, ""); err != nil {
			return err
		}
	}

	authUseCase := authUC.New(docs.users, sessions.repo, authUC.NewArgon2Hasher(nil), cfg.Session.TTL, zapLogger)
	schema, err := graph.NewSchema(graph.Services{
		Tasks: taskUC.New(docs.tasks, docs.statuses, docs.users, taskUC.Config{
			DefaultLimit: cfg.Tasks.DefaultLimit,
			MaxLimit:     cfg.Tasks.MaxLimit,
		}, zapLogger),
		Statuses: statusUseCase,
		Auth:     authUseCase,
		Profile:  profileUC.New(docs.users, presigner, cfg.Storage.UploadExpiry, zapLogger),
	}, zapLogger)
	if err != nil {
		return err
	}

	codec := middleware.NewSessionCodec(cfg.Session.Secret, cfg.AppName)
	cookies := middleware.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.IsProduction()}
	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handler := router.New(router.Handlers{
		Root:    apiHandler.NewRootHandler(cfg.AppName, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		GraphQL: apiHandler.NewGraphQLHandler(schema, authUseCase, codec, cookies, cfg.HTTP.MaxBodySize, ctxAdapter, zapLogger),
	},
		middleware.RequestLogger(zapLogger),
		middleware.SecureHeaders(cfg.IsProduction()),
		middleware.CORS(cfg.CORS.Origin),
		middleware.SessionCookie(codec, cookies, zapLogger),
	)

	server := &fasthttp.Server{
		Handler:            handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxConnsPerIP:      cfg.HTTP.MaxConn,
		MaxRequestBodySize: cfg.HTTP.MaxBodySize,
		Name:               cfg.AppName,
	}
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	zapLogger.Info("server started",
		zap.String("address", cfg.Address()),
		zap.String("database", cfg.Database.Driver),
		zap.String("sessions", cfg.Session.Store),
	)
	runCtx := manager.Run(appCtx, "http_server", func() error {
		return server.ListenAndServe(cfg.Address())
	})

	<-runCtx.Done()
	if cause := context.Cause(runCtx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}
