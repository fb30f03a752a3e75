package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/contactcrawl"
	"github.com/fwojciec/contactcrawl/crawl"
	"github.com/fwojciec/contactcrawl/fs"
	"github.com/fwojciec/contactcrawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    contactcrawl.Config
	DB        *sqlite.DB
	Results   contactcrawl.ResultService
	Queue     contactcrawl.JobQueue
	Scheduler *crawl.Scheduler
	Writer    *fs.ResultWriter
	Logger    *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl   CrawlCmd   `cmd:"" help:"Crawl every site in a CSV or JSON site list"`
	Convert ConvertCmd `cmd:"" help:"Convert a CSV export to a JSON site list"`
	Add     AddCmd     `cmd:"" help:"Enqueue a crawl job"`
	Worker  WorkerCmd  `cmd:"" help:"Process queued crawl jobs"`
	Results ResultsCmd `cmd:"" help:"List stored crawl results"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	File  string `arg:"" help:"CSV export or JSON site list"`
	Batch string `help:"Batch ID (generated when empty)"`
	Group int    `short:"g" help:"Concurrent sites per group (default from config)"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File   string `arg:"" help:"CSV export to convert"`
	Output string `arg:"" optional:"" help:"Output JSON path (default: input with .json extension)"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	File     string `arg:"" help:"CSV export or JSON site list to crawl"`
	Priority int    `short:"p" default:"5" help:"Job priority (1 = highest)"`
	User     string `short:"u" help:"Requesting user"`
}

// WorkerCmd is the "worker" subcommand.
type WorkerCmd struct {
	Once     bool   `help:"Process at most one job, then exit"`
	Interval string `default:"5s" help:"Poll interval when the queue is empty"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	Batch  string `help:"Filter by batch ID"`
	Status string `help:"Filter by status (success or error)"`
	Limit  int    `default:"50" help:"Maximum results to list"`
	Offset int    `help:"Results to skip"`
}
