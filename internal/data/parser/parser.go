package parser

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/claudewatch/claudewatch/internal/core/model"
	"github.com/claudewatch/claudewatch/internal/util"
)

// Parser decodes JSONL usage log files into normalized events.
type Parser struct {
	concurrency int
}

// ParseResult represents the result of parsing a single file. Malformed
// counts lines that failed to decode or carried no billable usage; those
// are skipped, never fatal.
type ParseResult struct {
	File      string
	Events    []model.UsageEvent
	Malformed int
	Error     error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{concurrency: concurrency}
}

// ParseFile parses the log file at the specified path. Events within one
// file come back in file order; undecodable lines are counted and
// skipped.
func (p *Parser) ParseFile(filepath string) ([]model.UsageEvent, int, error) {
	util.LogDebug(fmt.Sprintf("Start parsing file: %s", filepath))

	file, err := os.Open(filepath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", filepath, err))
		return nil, 0, err
	}
	defer file.Close()

	var events []model.UsageEvent
	malformed := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var log model.UsageLog
		if err := sonic.Unmarshal(line, &log); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", filepath, lineCount, err))
			malformed++
			continue
		}

		event, ok := log.ToEvent()
		if !ok {
			// Lines without billable usage (meta entries, tool results)
			// are expected and not counted as malformed.
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		util.LogDebug(fmt.Sprintf("Error scanning file: %s - %v", filepath, err))
		return nil, malformed, err
	}

	return events, malformed, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of
// ParseResult. Per-file event lists are produced in parallel; the caller
// merges and globally sorts them before partitioning.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			events, malformed, err := p.ParseFile(f)
			fileDuration := time.Since(fileStart)

			if err != nil {
				util.LogDebug(fmt.Sprintf("File parsing failed: %s, duration %v - %v", f, fileDuration, err))
			}

			results <- ParseResult{
				File:      f,
				Events:    events,
				Malformed: malformed,
				Error:     err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)

		totalDuration := time.Since(start)
		util.LogDebug(fmt.Sprintf("Concurrent parsing finished, total duration: %v", totalDuration))
	}()

	return results
}
