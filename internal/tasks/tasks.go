// package tasks implements the submission workflows that turn a finished
// draft into uploaded artifacts and a table record.
//
// The core abstraction is SubmitEngine, which orchestrates validation,
// storage uploads, and record inserts. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/desertthunder/lessonctl/internal/content"
	"github.com/desertthunder/lessonctl/internal/models"
	"github.com/desertthunder/lessonctl/internal/services"
	"github.com/desertthunder/lessonctl/internal/shared"
	"golang.org/x/time/rate"
)

// LessonSubmitResult contains the outcome of a successful lesson submission.
type LessonSubmitResult struct {
	Record models.LessonRecord // Record inserted into the lesson table
	Folder string              // Storage folder the images were uploaded into
	Steps  int                 // Number of step images uploaded
}

// VideoSubmitResult contains the outcome of a successful video submission.
type VideoSubmitResult struct {
	Record models.VideoRecord // Record inserted into the video table
}

// SubmitEngine defines the submission workflows for both record types.
type SubmitEngine interface {
	// SubmitLesson validates the draft, uploads the preview image, uploads all
	// step images concurrently, and inserts one lesson record.
	SubmitLesson(ctx context.Context, progress chan<- ProgressUpdate, draft *content.LessonDraft) (*LessonSubmitResult, error)

	// SubmitVideo validates the draft and inserts one video record. No file
	// uploads are involved.
	SubmitVideo(ctx context.Context, progress chan<- ProgressUpdate, draft *content.VideoDraft) (*VideoSubmitResult, error)
}

// UploadEngineOpts contains configuration for creating an [UploadEngine].
type UploadEngineOpts struct {
	LessonTable string  // Lesson table name (default: lessons)
	VideoTable  string  // Video table name (default: videos)
	RateLimit   float64 // Storage uploads per second (default: 5)
}

// UploadEngine implements [SubmitEngine] against injected storage and table services.
type UploadEngine struct {
	storage     services.Storage
	table       services.Table
	lessonTable string
	videoTable  string
	rateLimit   float64
}

// NewUploadEngine creates an UploadEngine with the provided services.
func NewUploadEngine(storage services.Storage, table services.Table, opts UploadEngineOpts) *UploadEngine {
	if opts.LessonTable == "" {
		opts.LessonTable = "lessons"
	}
	if opts.VideoTable == "" {
		opts.VideoTable = "videos"
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &UploadEngine{
		storage:     storage,
		table:       table,
		lessonTable: opts.LessonTable,
		videoTable:  opts.VideoTable,
		rateLimit:   opts.RateLimit,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

type stepUpload struct {
	index  int
	record models.StepRecord
	err    error
}

// SubmitLesson runs the full lesson submission workflow.
//
// Order: wholesale validation, preview upload to <category>/<slug>/preview.png
// (fatal on failure, nothing else attempted), concurrent step image uploads to
// <folder>/steps/<NN>.png (fire all, await all; any failure fails the batch
// and completed uploads are not rolled back), then one insert into the lesson
// table. Success resets the draft; every failure leaves it intact for a
// manual retry.
func (e *UploadEngine) SubmitLesson(ctx context.Context, progress chan<- ProgressUpdate, draft *content.LessonDraft) (*LessonSubmitResult, error) {
	if e.storage == nil {
		return nil, fmt.Errorf("%w: storage service not initialized", shared.ErrServiceUnavailable)
	}
	if e.table == nil {
		return nil, fmt.Errorf("%w: table service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, validateUpdate())
	if errs := content.ValidateLesson(draft); errs.Any() {
		return nil, fmt.Errorf("%w: draft has empty or missing fields", shared.ErrValidationFailed)
	}

	steps := draft.Steps.All()

	// The validator guarantees images; a nil one here is a programming fault,
	// reported with its step number.
	for i, step := range steps {
		if !step.HasImage() {
			return nil, fmt.Errorf("missing image for step %d", i+1)
		}
	}

	folder := fmt.Sprintf("%s/%s", draft.Category, draft.Slug)

	e.sendProgress(progress, previewUpdate(folder))
	if err := e.storage.Upload(ctx, folder+"/preview.png", draft.Preview, true); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUploadFailed, err)
	}

	limiter := rate.NewLimiter(rate.Limit(e.rateLimit), 1)
	results := make(chan stepUpload, len(steps))

	var wg sync.WaitGroup
	for i, step := range steps {
		wg.Add(1)
		go func(index int, step *content.Step) {
			defer wg.Done()

			if err := limiter.Wait(ctx); err != nil {
				results <- stepUpload{index: index, err: err}
				return
			}

			imagePath := fmt.Sprintf("steps/%02d.png", index+1)
			err := e.storage.Upload(ctx, folder+"/"+imagePath, step.Image, true)
			results <- stepUpload{
				index:  index,
				record: models.StepRecord{Frank: step.Caption, Image: imagePath},
				err:    err,
			}
		}(i, step)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	uploads := make([]stepUpload, 0, len(steps))
	completed := 0
	for res := range results {
		completed++
		e.sendProgress(progress, stepUploadUpdate(completed, len(steps)))
		uploads = append(uploads, res)
	}

	// Fail-fast aggregation: any step failure fails the whole batch. Uploads
	// that already completed stay in storage (at-least-once, no rollback).
	sort.Slice(uploads, func(i, j int) bool { return uploads[i].index < uploads[j].index })
	stepRecords := make([]models.StepRecord, len(uploads))
	for _, upload := range uploads {
		if upload.err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", shared.ErrUploadFailed, upload.index+1, upload.err)
		}
		stepRecords[upload.index] = upload.record
	}

	record := models.LessonRecord{
		Title:    draft.Title,
		Slug:     draft.Slug,
		Category: draft.Category,
		Preview:  "preview.png",
		Steps:    stepRecords,
	}

	e.sendProgress(progress, insertUpdate(e.lessonTable))
	if err := e.table.Insert(ctx, e.lessonTable, record); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInsertFailed, err)
	}

	result := &LessonSubmitResult{Record: record, Folder: folder, Steps: len(stepRecords)}
	e.sendProgress(progress, doneUpdate(fmt.Sprintf("Lesson %q uploaded", draft.Title)))

	draft.Reset()
	return result, nil
}

// SubmitVideo runs the video submission workflow: validation, then a single
// insert with status fixed to "approved". Failure leaves the draft editable.
func (e *UploadEngine) SubmitVideo(ctx context.Context, progress chan<- ProgressUpdate, draft *content.VideoDraft) (*VideoSubmitResult, error) {
	if e.table == nil {
		return nil, fmt.Errorf("%w: table service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, validateUpdate())
	if errs := content.ValidateVideo(draft); errs.Any() {
		if errs.YouTubeRef {
			return nil, fmt.Errorf("%w: parse the YouTube reference first", shared.ErrValidationFailed)
		}
		return nil, fmt.Errorf("%w: draft has empty or missing fields", shared.ErrValidationFailed)
	}

	record := draft.Record()

	e.sendProgress(progress, insertUpdate(e.videoTable))
	if err := e.table.Insert(ctx, e.videoTable, record); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInsertFailed, err)
	}

	result := &VideoSubmitResult{Record: record}
	e.sendProgress(progress, doneUpdate(fmt.Sprintf("Video %s saved", record.ID)))

	draft.Reset()
	return result, nil
}
