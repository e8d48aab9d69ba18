package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"recipe-catalog/internal/bot"
	"recipe-catalog/internal/config"
	"recipe-catalog/internal/repository"
	"recipe-catalog/internal/service"
	"recipe-catalog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server, and the Telegram bot when TELEGRAM_TOKEN is set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	recipeSvc := service.NewRecipeService(repository.NewRecipeRepository(db))
	categorySvc := service.NewCategoryService(repository.NewCategoryRepository(db))

	server, err := web.NewServer(recipeSvc, categorySvc, web.Options{
		SSL:     cfg.HTTPSSL,
		GinMode: cfg.GinMode,
	})
	if err != nil {
		return err
	}

	var telegramBot *bot.Bot
	if cfg.BotEnabled() {
		digestSvc := service.NewDigestService(recipeSvc, categorySvc)
		telegramBot, err = bot.New(cfg.TelegramToken, repository.NewSubscriberRepository(db), digestSvc)
		if err != nil {
			return err
		}
	} else {
		log.Println("[info] TELEGRAM_TOKEN not set, bot disabled")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.HTTPAddr)
	})

	if telegramBot != nil {
		scheduler := service.NewSchedulerService(time.Local)
		_, err := scheduler.ScheduleDigest(cfg.DigestTime, cfg.DigestInterval, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("digest: %v", err)
			}
		})
		switch {
		case err == nil:
			scheduler.Start()
			defer scheduler.Stop()
		case errors.Is(err, service.ErrNoSchedule):
			log.Println("[info] digest schedule disabled")
		default:
			log.Printf("[warn] digest schedule: %v", err)
		}

		g.Go(func() error {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	log.Println("Recipe catalog started.")
	err = g.Wait()
	log.Println("Shutdown complete.")
	return err
}
