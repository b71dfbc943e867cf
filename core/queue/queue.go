package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"castle-admin/core/config"
	"castle-admin/core/constants"
	"castle-admin/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer hands work to the background worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewTask(taskType string, payload any, opts ...asynq.Option) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, b, opts...), nil
}

// DecodePayload unmarshals a task payload and marks malformed payloads as
// non-retryable.
func DecodePayload(t *asynq.Task, dest any) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	task, err := NewTask(taskType, payload, opts...)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("Queue:Enqueue:Error", "task", taskType, "error", err)
		return err
	}
	logger.Info("Queue:Enqueue:Success", "task", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Inline runs tasks synchronously against a mux. Used when the background
// worker is disabled and in tests.
type Inline struct {
	mux *asynq.ServeMux
}

func NewInline(mux *asynq.ServeMux) *Inline {
	return &Inline{mux: mux}
}

func (i *Inline) Enqueue(ctx context.Context, taskType string, payload any, _ ...asynq.Option) error {
	task, err := NewTask(taskType, payload)
	if err != nil {
		return err
	}
	return i.mux.ProcessTask(ctx, task)
}

type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewWorker(redisCfg config.RedisConfig, queueCfg config.QueueConfig, loc *time.Location) *Worker {
	concurrency := queueCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	opt := RedisOpt(redisCfg)
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			constants.QueueCritical: 6,
			constants.QueueDefault:  3,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			logger.Error("Queue:Worker:TaskFailed", "task", task.Type(), "retried", retried, "error", err)
		}),
	})
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: loc})
	return &Worker{server: server, scheduler: scheduler, mux: asynq.NewServeMux()}
}

func (w *Worker) Mux() *asynq.ServeMux {
	return w.mux
}

// Schedule registers a periodic task using a cron spec.
func (w *Worker) Schedule(spec, taskType string, payload any, opts ...asynq.Option) error {
	task, err := NewTask(taskType, payload, opts...)
	if err != nil {
		return err
	}
	id, err := w.scheduler.Register(spec, task)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", taskType, err)
	}
	logger.Info("Queue:Worker:Scheduled", "task", taskType, "spec", spec, "entry_id", id)
	return nil
}

// Run blocks until ctx is done, then drains the worker.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start asynq server: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start asynq scheduler: %w", err)
	}
	logger.Info("Queue:Worker:Started")

	<-ctx.Done()
	w.scheduler.Shutdown()
	w.server.Shutdown()
	logger.Info("Queue:Worker:Stopped")
	return nil
}
