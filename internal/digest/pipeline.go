// Package digest runs the daily pipeline: resolve each channel, read its feed, pick today's
// uploads, summarize them and write one report per video.
package digest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lepinkainen/video-digest/internal/config"
	"github.com/lepinkainen/video-digest/internal/summarize"
	"github.com/lepinkainen/video-digest/internal/youtube"
)

// ChannelResolver maps a channel page URL to its channel ID
type ChannelResolver interface {
	Resolve(ctx context.Context, pageURL string) (string, error)
}

// FeedSource returns the feed entries for a channel ID
type FeedSource interface {
	Fetch(ctx context.Context, channelID string) youtube.FeedResult
}

// Summarizer produces a summary for a video URL
type Summarizer interface {
	Summarize(ctx context.Context, videoURL string) (summarize.Result, error)
}

// ReportWriter persists a summary and returns where it went. date is the run's reference time.
type ReportWriter interface {
	Write(date time.Time, channel, title, url string, result summarize.Result) (string, error)
}

// DailyVideo is a feed entry published today, tagged with its channel
type DailyVideo struct {
	Channel   string
	Title     string
	URL       string
	Published time.Time
}

// Entry describes one report written during a run
type Entry struct {
	Path      string
	Channel   string
	Title     string
	URL       string
	Published time.Time
	Summary   string
	Keywords  []string
}

// Report lists the documents written by a run, in processing order
type Report struct {
	Date    time.Time
	Entries []Entry
}

// Pipeline wires the per-step components together. Channels are processed in slice order,
// one video at a time.
type Pipeline struct {
	Channels   []config.Channel
	Resolver   ChannelResolver
	Feeds      FeedSource
	Summarizer Summarizer
	Writer     ReportWriter

	// Now is the reference clock for "today"; time.Now when nil
	Now func() time.Time
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Run processes every channel. The clock is read once; the filter and every report use that time.
// Failures are logged and skipped at channel and video granularity, so the returned error is only
// ever the context's.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	log := p.logger()
	now := p.now()
	report := &Report{Date: now.UTC()}

	for _, channel := range p.Channels {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		videos, err := p.channelVideos(ctx, log, channel, now)
		if err != nil {
			log.Error("Channel processing failed", "channel", channel.Name, "error", err)
			continue
		}

		if len(videos) == 0 {
			log.Info("No new videos today", "channel", channel.Name)
			continue
		}

		for _, video := range videos {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			entry, err := p.processVideo(ctx, log, video, now)
			if err != nil {
				log.Error("Video summary failed", "channel", video.Channel, "title", video.Title, "error", err)
				continue
			}
			report.Entries = append(report.Entries, entry)
		}
	}

	log.Debug("Run finished", "channels", len(p.Channels), "reports", len(report.Entries))
	return report, nil
}

// DailyVideos resolves and filters every channel without summarizing anything.
// Channel failures are logged and skipped as in Run.
func (p *Pipeline) DailyVideos(ctx context.Context) ([]DailyVideo, error) {
	log := p.logger()
	now := p.now()

	var all []DailyVideo
	for _, channel := range p.Channels {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		videos, err := p.channelVideos(ctx, log, channel, now)
		if err != nil {
			log.Error("Channel processing failed", "channel", channel.Name, "error", err)
			continue
		}
		all = append(all, videos...)
	}
	return all, nil
}

// channelVideos resolves the channel, reads its feed and keeps today's entries.
// Entries with an unreadable timestamp are logged as failed videos and left out.
func (p *Pipeline) channelVideos(ctx context.Context, log *slog.Logger, channel config.Channel, now time.Time) ([]DailyVideo, error) {
	channelID, err := p.Resolver.Resolve(ctx, channel.URL)
	if err != nil {
		return nil, err
	}

	feed := p.Feeds.Fetch(ctx, channelID)
	if feed.Err != nil {
		log.Warn("Feed returned no entries", "channel", channel.Name, "error", feed.Err)
	}

	today, errs := youtube.FilterToday(feed.Entries, now)
	for _, err := range errs {
		title := ""
		var malformed *youtube.MalformedTimestampError
		if errors.As(err, &malformed) {
			title = malformed.Title
		}
		log.Error("Video summary failed", "channel", channel.Name, "title", title, "error", err)
	}

	videos := make([]DailyVideo, 0, len(today))
	for _, entry := range today {
		published, _ := youtube.ParsePublished(entry)
		videos = append(videos, DailyVideo{
			Channel:   channel.Name,
			Title:     entry.Title,
			URL:       entry.URL,
			Published: published,
		})
	}
	return videos, nil
}

func (p *Pipeline) processVideo(ctx context.Context, log *slog.Logger, video DailyVideo, now time.Time) (Entry, error) {
	log.Info("Summarizing video", "channel", video.Channel, "title", video.Title)

	result, err := p.Summarizer.Summarize(ctx, video.URL)
	if err != nil {
		return Entry{}, err
	}

	path, err := p.Writer.Write(now, video.Channel, video.Title, video.URL, result)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Path:      path,
		Channel:   video.Channel,
		Title:     video.Title,
		URL:       video.URL,
		Published: video.Published,
		Summary:   result.Summary,
		Keywords:  result.Keywords,
	}, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
