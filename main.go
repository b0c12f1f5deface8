package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"go.uber.org/fx"

	"github.com/jcrbcn/rss2bsky/logic"
	"github.com/jcrbcn/rss2bsky/server"
	"github.com/jcrbcn/rss2bsky/shared"
)

type initErrorHandler struct {
}

func (*initErrorHandler) HandleError(err error) {
	fmt.Fprintf(os.Stderr, "Failed to initialize dependency injection\n%v", err)
}

var logger *log.Logger

func main() {

	opts := shared.ParseCmdOptions()
	cfg := shared.LoadConfig(opts)
	provideConfig := func() *shared.Config {
		return cfg
	}

	logger = initLogger(cfg)
	provideLogger := func() shared.ILogger {
		return logger
	}

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			provideConfig,
			provideLogger,
			shared.NewUserAgent,
			server.NewHTTPServer,
			fx.Annotate(server.NewMux, fx.ParamTags(`group:"handler_group"`)),
			logic.NewMetrics,
			logic.NewBskyClient,
			logic.NewFeedFetcher,
			logic.NewTimelineCursor,
			logic.NewDeepLTranslator,
			logic.NewComposer,
			logic.NewCardBuilder,
			logic.NewPublisher,
			logic.NewRunner,
			asHandlerGroupDef(server.NewMetricsHandlerGroup),
			asHandlerGroupDef(server.NewHealthHandlerGroup),
		),
		fx.Invoke(
			registerHooks,
			func(*http.Server) {},
		),
		fx.ErrorHook(&initErrorHandler{}),
	)
	app.Run()
}

func asHandlerGroupDef(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(server.IHandlerGroup)),
		fx.ResultTags(`group:"handler_group"`),
	)
}

func initLogger(cfg *shared.Config) *log.Logger {

	writer := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			msg := fmt.Sprintf("Failed to open log file '%v': %v", cfg.LogFile, err)
			log.Fatal(msg)
		}
		writer = io.MultiWriter(os.Stderr, logFile)
	}

	logger := log.New(writer)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat("2006-01-02 15:04:05.000")
	switch cfg.LogLevel {
	case "Debug":
		logger.SetLevel(log.DebugLevel)
	case "Info":
		logger.SetLevel(log.InfoLevel)
	case "Warn":
		logger.SetLevel(log.WarnLevel)
	case "Error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}

func registerHooks(lc fx.Lifecycle, sd fx.Shutdowner, runner logic.IRunner, metrics logic.IMetrics) {
	lc.Append(
		fx.Hook{
			OnStart: func(context.Context) error {
				logger.Printf("Application starting up")
				metrics.ServiceStarted()
				go func() {
					code := 0
					if err := runner.Run(context.Background()); err != nil {
						logger.Errorf("Run failed: %v", err)
						code = 1
					}
					_ = sd.Shutdown(fx.ExitCode(code))
				}()
				return nil
			},
			OnStop: func(context.Context) error {
				logger.Printf("Application shutting down")
				return nil
			},
		},
	)
}
