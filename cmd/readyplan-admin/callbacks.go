package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/readyplan/ready-api/internal/bootstrap"
	"github.com/readyplan/ready-api/internal/data"
	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/readyplan/ready-api/internal/service"
)

const defaultAdminTimeout = 2 * time.Minute

type listCallbackOptions struct {
	Valid  string
	Since  string
	Until  string
	Limit  int
	Offset int
	JSON   bool
}

type showCallbackOptions struct {
	ID      string
	RawJSON bool
}

type archiveSweepOptions struct {
	Timeout time.Duration
}

func parseListCallbackFlags(args []string) (listCallbackOptions, error) {
	opts := listCallbackOptions{}
	fs := flag.NewFlagSet("list-callbacks", flag.ContinueOnError)
	fs.StringVar(&opts.Valid, "valid", "", "filter by signature outcome (true or false)")
	fs.StringVar(&opts.Since, "since", "", "only deliveries received at or after this RFC3339 time")
	fs.StringVar(&opts.Until, "until", "", "only deliveries received before this RFC3339 time")
	fs.IntVar(&opts.Limit, "limit", 50, "maximum rows to return")
	fs.IntVar(&opts.Offset, "offset", 0, "rows to skip")
	fs.BoolVar(&opts.JSON, "json", false, "emit rows as JSON instead of a table")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o listCallbackOptions) toListOptions() (model.CallbackListOptions, error) {
	listOpts := model.CallbackListOptions{
		Limit:  o.Limit,
		Offset: o.Offset,
	}
	if o.Valid != "" {
		valid, err := strconv.ParseBool(o.Valid)
		if err != nil {
			return listOpts, fmt.Errorf("parse -valid flag: %w", err)
		}
		listOpts.SignatureValid = &valid
	}
	if o.Since != "" {
		since, err := time.Parse(time.RFC3339, o.Since)
		if err != nil {
			return listOpts, fmt.Errorf("parse -since flag: %w", err)
		}
		listOpts.Since = since
	}
	if o.Until != "" {
		until, err := time.Parse(time.RFC3339, o.Until)
		if err != nil {
			return listOpts, fmt.Errorf("parse -until flag: %w", err)
		}
		listOpts.Until = until
	}
	return listOpts, nil
}

func runListCallbacks(cmdCtx *commandContext, args []string) error {
	opts, err := parseListCallbackFlags(args)
	if err != nil {
		return err
	}
	listOpts, err := opts.toListOptions()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAdminTimeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	rows, err := data.NewCallbackRepo(db).List(ctx, listOpts)
	if err != nil {
		return fmt.Errorf("list callback deliveries: %w", err)
	}

	if opts.JSON {
		return renderCallbackJSON(os.Stdout, rows)
	}
	return renderCallbackTable(os.Stdout, rows)
}

func renderCallbackTable(w io.Writer, rows []*model.CallbackDelivery) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tCALLBACK_ID\tVALID\tJOB\tEVENT\tRECEIVED\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writef(tw, "%s\t%s\t%t\t%s\t%s\t%s\n",
			row.ID,
			row.CallbackID,
			row.SignatureValid,
			strOrDash(row.ExternalJobID),
			strOrDash(row.EventType),
			row.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\n%d deliveries\n", len(rows))
}

func renderCallbackJSON(w io.Writer, rows []*model.CallbackDelivery) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func parseShowCallbackFlags(args []string) (showCallbackOptions, error) {
	opts := showCallbackOptions{}
	fs := flag.NewFlagSet("show-callback", flag.ContinueOnError)
	fs.StringVar(&opts.ID, "id", "", "delivery row ID (required)")
	fs.BoolVar(&opts.RawJSON, "raw", false, "print only the raw payload")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.ID == "" {
		return opts, fmt.Errorf("-id flag is required")
	}
	return opts, nil
}

func runShowCallback(cmdCtx *commandContext, args []string) error {
	opts, err := parseShowCallbackFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultAdminTimeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	row, err := data.NewCallbackRepo(db).GetByID(ctx, opts.ID)
	if err != nil {
		return fmt.Errorf("get callback delivery: %w", err)
	}

	if opts.RawJSON {
		if err := write(os.Stdout, string(row.Payload)); err != nil {
			return err
		}
		return writeln(os.Stdout)
	}
	return renderCallbackDetail(os.Stdout, row)
}

func renderCallbackDetail(w io.Writer, row *model.CallbackDelivery) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fields := []struct {
		label string
		value string
	}{
		{"ID", row.ID},
		{"Callback ID", row.CallbackID},
		{"Signature valid", strconv.FormatBool(row.SignatureValid)},
		{"External job", strOrDash(row.ExternalJobID)},
		{"Event", strOrDash(row.EventType)},
		{"Workflow", strOrDash(row.WorkflowName)},
		{"Received", row.CreatedAt.Format(time.RFC3339)},
	}
	for _, f := range fields {
		if err := writef(tw, "%s:\t%s\n", f.label, f.value); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := writef(w, "\nPayload:\n"); err != nil {
		return err
	}
	return writeln(w, string(row.Payload))
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func parseArchiveSweepFlags(args []string) (archiveSweepOptions, error) {
	opts := archiveSweepOptions{}
	fs := flag.NewFlagSet("archive-sweep", flag.ContinueOnError)
	fs.DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "sweep timeout")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runArchiveSweep(cmdCtx *commandContext, args []string) error {
	opts, err := parseArchiveSweepFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	store, err := bootstrap.BuildArchiveStore(ctx, cmdCtx.Config.Archiver)
	if err != nil {
		return err
	}

	archiver, err := service.NewArchiverService(service.ArchiverServiceOptions{
		Callbacks: data.NewCallbackRepo(db),
		Store:     store,
		Config:    cmdCtx.Config.Archiver,
		Logger:    cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("wire archiver service: %w", err)
	}

	archived, err := archiver.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("archive sweep: %w", err)
	}

	cmdCtx.Logger.Info("archive sweep complete", "archived", archived)
	return nil
}
