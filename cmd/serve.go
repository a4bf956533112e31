package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/server"
)

var (
	serveAddr     string
	serveProblems string
)

// serveCmd: tutor serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the problem bank and the solution checker over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		path := cfg.Problems
		if serveProblems != "" {
			path = serveProblems
		}

		bank, err := problem.LoadBank(path)
		if err != nil {
			logger.Error("Error loading problems", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		matcher, err := cfg.Matcher(logger)
		if err != nil {
			logger.Error("Error creating matcher", zap.Error(err))
			os.Exit(1)
		}

		srv := server.New(bank, server.WithMatcher(matcher), server.WithLogger(logger))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("Serving problems",
			zap.String("addr", addr),
			zap.String("problems", path),
			zap.Int("count", bank.Len()))
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			logger.Error("Server stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVarP(&serveProblems, "problems", "p", "", "Problem file (default from config)")
}
