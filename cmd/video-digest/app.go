package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lepinkainen/video-digest/internal/config"
	"github.com/lepinkainen/video-digest/internal/digest"
	"github.com/lepinkainen/video-digest/internal/report"
	"github.com/lepinkainen/video-digest/internal/summarize"
	"github.com/lepinkainen/video-digest/internal/youtube"
	"github.com/lepinkainen/video-digest/pkg/feed"
	httputil "github.com/lepinkainen/video-digest/pkg/http"
	"github.com/lepinkainen/video-digest/pkg/preview"
)

// newPipeline wires the real components from cfg. The summarizer is left out when
// withSummarizer is false, which is all preview needs.
func newPipeline(cfg *config.Config, channelsFile string, timeout time.Duration, withSummarizer bool) (*digest.Pipeline, *report.Writer, error) {
	channels, err := config.LoadChannels(channelsFile)
	if err != nil {
		return nil, nil, err
	}

	httpConfig := httputil.DefaultConfig()
	httpConfig.Timeout = timeout
	client := httputil.NewClient(httpConfig)

	writer, err := report.NewWriter(cfg.OutputDir)
	if err != nil {
		return nil, nil, err
	}

	pipeline := &digest.Pipeline{
		Channels: channels,
		Resolver: youtube.NewResolver(client),
		Feeds:    youtube.NewFeedFetcher(client, cfg.FeedBaseURL),
		Writer:   writer,
		Now:      time.Now,
	}

	if withSummarizer {
		pipeline.Summarizer = summarize.NewClient(summarize.Config{
			APIKey:     cfg.APIKey,
			WorkflowID: cfg.WorkflowID,
			BaseURL:    cfg.APIBaseURL,
		}, httpConfig)
	}

	return pipeline, writer, nil
}

// runDigest processes every channel and optionally writes the digest feed.
// Only setup problems and cancellation are returned; per-item failures are logged by the pipeline.
func runDigest(ctx context.Context, cfg *config.Config, digestFeed string) error {
	pipeline, _, err := newPipeline(cfg, CLI.Channels, CLI.Timeout, true)
	if err != nil {
		return err
	}

	slog.Info("Starting run", "channels", len(pipeline.Channels), "output_dir", cfg.OutputDir)

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Run complete", "reports", len(result.Entries))

	if digestFeed == "" {
		return nil
	}
	if len(result.Entries) == 0 {
		slog.Info("No reports written, skipping digest feed", "path", digestFeed)
		return nil
	}

	if err := digestGenerator(result.Date).SaveAtom(digestItems(result), digestFeed); err != nil {
		slog.Error("Failed to write digest feed", "path", digestFeed, "error", err)
	}
	return nil
}

func digestGenerator(date time.Time) *feed.Generator {
	g := feed.NewGenerator(
		"Video digest "+date.Format(report.DateLayout),
		"Summaries of the videos published today",
		"https://www.youtube.com/",
		"video-digest",
	)
	g.Now = func() time.Time { return date }
	return g
}

// digestItems turns the run's reports into feed entries, one per written document
func digestItems(result *digest.Report) []feed.Item {
	items := make([]feed.Item, 0, len(result.Entries))
	for _, entry := range result.Entries {
		items = append(items, feed.Item{
			Title:       fmt.Sprintf("%s: %s", entry.Channel, entry.Title),
			Link:        entry.URL,
			Description: entry.Summary,
			Author:      entry.Channel,
			Created:     entry.Published,
			ID:          entry.URL,
			Categories:  entry.Keywords,
		})
	}
	return items
}

// previewVideos lists today's videos without calling the workflow
func previewVideos(ctx context.Context, cfg *config.Config, index int) error {
	pipeline, writer, err := newPipeline(cfg, CLI.Channels, CLI.Timeout, false)
	if err != nil {
		return err
	}

	now := time.Now()
	pipeline.Now = func() time.Time { return now }

	videos, err := pipeline.DailyVideos(ctx)
	if err != nil {
		return err
	}

	items := previewItems(videos, writer, now)

	if index >= 0 {
		return preview.PrintItem(os.Stdout, items, index, now)
	}
	return preview.Run(items, now)
}

// previewItems names each video's report the way a run started at now would
func previewItems(videos []digest.DailyVideo, writer *report.Writer, now time.Time) []preview.Item {
	items := make([]preview.Item, 0, len(videos))
	for _, v := range videos {
		items = append(items, preview.Item{
			Channel:    v.Channel,
			Title:      v.Title,
			URL:        v.URL,
			Published:  v.Published,
			ReportName: writer.Filename(now, v.Channel, v.Title),
		})
	}
	return items
}
