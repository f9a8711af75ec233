// Package pipeline drives the line-by-line decode: it reads each input
// source as a stream of lines, hands every non-empty line to a sentence
// parser, and emits one Record per line in source order.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"nmeafeed/internal/nmea"
)

type Options struct {
	// MaxLineBytes caps the scanner buffer; a longer line fails that
	// source with a terminal ParseError.
	MaxLineBytes int
	// SkipErrors drops ParseError records before they reach the emitter.
	// Pure downstream filter; decoding is unchanged.
	SkipErrors bool
	// Workers bounds how many sources are processed concurrently. Order
	// within a source is always preserved; order across sources is not
	// when Workers > 1.
	Workers int

	// DialTimeout applies to tcp:// sources.
	DialTimeout time.Duration
}

const defaultScanBuffer = 64 * 1024

// Run processes every source and forwards records to emit. emit is never
// called concurrently. Per-line failures become ParseError records; a
// source that cannot be opened or fails mid-read yields one terminal
// ParseError and the run moves on. Only emit failures and context
// cancellation abort the run.
func Run(ctx context.Context, sources []string, opts Options, emit func(nmea.Record) error) error {
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = 1024 * 1024
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	records := make(chan nmea.Record, 128)

	// Single writer drains the channel so worker output never interleaves
	// mid-record. A write failure cancels the workers.
	var writeErr error
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for rec := range records {
			if writeErr != nil {
				continue
			}
			if err := emit(rec); err != nil {
				writeErr = err
				cancel()
			}
		}
	}()

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(opts.Workers)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			return scanSource(gctx, src, opts, records)
		})
	}
	err := g.Wait()
	close(records)
	<-writerDone

	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// scanSource reads one source line by line with its own parser and 1-based
// line counter. Each worker owns its parser, so fragment reassembly never
// crosses sources.
func scanSource(ctx context.Context, source string, opts Options, out chan<- nmea.Record) error {
	parser := nmea.NewParser()
	lineNo := 0

	send := func(rec nmea.Record) error {
		if opts.SkipErrors {
			if _, isErr := rec.Message.(nmea.ParseError); isErr {
				return nil
			}
		}
		select {
		case out <- rec:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	sourceError := func(err error) error {
		return send(nmea.Record{Message: nmea.ParseError{
			Error:      err.Error(),
			LineNumber: lineNo,
			File:       source,
		}})
	}

	r, err := open(ctx, source, opts.DialTimeout)
	if err != nil {
		return sourceError(err)
	}
	defer r.Close()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, defaultScanBuffer), opts.MaxLineBytes)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		res := parser.Parse(line)
		rec := nmea.Record{
			RawSentence:   line,
			TagBlock:      res.TagBlock,
			ChecksumError: res.ChecksumError,
			Message:       res.Message,
		}
		if res.Err != nil {
			rec.Message = nmea.ParseError{
				RawSentence: line,
				Error:       res.Err.Error(),
				LineNumber:  lineNo,
				File:        source,
			}
		}
		if err := send(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return sourceError(fmt.Errorf("reading %s: %w", source, err))
	}
	return nil
}

// open resolves a source name: tcp://host:port dials a line feed, anything
// else is a file path.
func open(ctx context.Context, source string, dialTimeout time.Duration) (io.ReadCloser, error) {
	if addr, ok := strings.CutPrefix(source, "tcp://"); ok {
		dialer := &net.Dialer{Timeout: dialTimeout}
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	return f, nil
}
