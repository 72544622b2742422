package cmd

import (
	"context"
	"time"

	"leaderboard-payouts/core/config"
	"leaderboard-payouts/core/database"
	"leaderboard-payouts/core/storage"
	"leaderboard-payouts/feature/payouts"
	"leaderboard-payouts/feature/payouts/history"
	"leaderboard-payouts/feature/payouts/mee6"
	"leaderboard-payouts/feature/payouts/publish"

	"go.uber.org/zap"
)

// buildService wires the payout service with its optional collaborators.
// Storage and database are best effort: a failure is logged and the feature is left off.
func buildService(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*payouts.Service, error) {
	var opts []payouts.Option

	if cfg.Storage.Enabled {
		if pub, err := buildPublisher(ctx, cfg.Storage); err != nil {
			logg.Warn("Report archival disabled", zap.Error(err))
		} else {
			opts = append(opts, payouts.WithPublisher(pub))
			logg.Info("Archiving reports", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Storage.ReportPrefix))
		}
	}

	if cfg.Database.Enabled {
		if store, err := buildHistory(cfg.Database); err != nil {
			logg.Warn("Run history disabled", zap.Error(err))
		} else {
			opts = append(opts, payouts.WithHistory(store))
			logg.Info("Recording run history", zap.String("driver", cfg.Database.Driver))
		}
	}

	return payouts.NewService(cfg.Payouts, mee6.NewClient(cfg.Leaderboard), logg, opts...)
}

func buildPublisher(ctx context.Context, cfg storage.Config) (*publish.Publisher, error) {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	pub := publish.New(client, cfg.Bucket, cfg.ReportPrefix, cfg.Region)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(max(cfg.TimeoutSeconds, 1))*time.Second)
	defer cancel()
	if err := pub.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return pub, nil
}

func buildHistory(cfg database.Config) (*history.Store, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	store := history.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}
	return store, nil
}
