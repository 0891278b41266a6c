package core

import (
	"fmt"
	"sync"
)

// JobStart runs on a worker goroutine and produces the job result.
type JobStart func() (interface{}, error)

// JobOnComplete and JobOnFailure run on the thread calling JobSystem.Update.
type JobOnComplete func(result interface{})
type JobOnFailure func(err error)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	Name       string
	OnStart    JobStart
	OnComplete JobOnComplete
	OnFailure  JobOnFailure
}

type jobResult struct {
	task   JobTask
	result interface{}
	err    error
}

/**
 * @brief A fixed pool of workers. Jobs run concurrently; their callbacks are
 * queued and run during Update so they never race with the frame.
 */
type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
	inflight   sync.WaitGroup

	mu      sync.Mutex
	results []jobResult
	pending int
	closed  bool
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()
	LogInfo("Job system started with %d workers.", numWorkers)
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart()
				js.mu.Lock()
				js.results = append(js.results, jobResult{task: job, result: result, err: err})
				js.mu.Unlock()
				js.inflight.Done()
			}
		}()
	}
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full. Must not race with Shutdown.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.OnStart == nil {
		return fmt.Errorf("job '%s' has no entry point", jt.Name)
	}
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return ErrJobSystemClosed
	}
	js.pending++
	js.inflight.Add(1)
	js.mu.Unlock()

	js.jobQueue <- jt
	return nil
}

// Pending returns the number of submitted jobs whose callbacks have not run yet.
func (js *JobSystem) Pending() int {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.pending
}

/**
 * @brief Runs the callbacks of finished jobs. Should happen once an update
 * cycle. Returns the number of jobs completed.
 */
func (js *JobSystem) Update() int {
	js.mu.Lock()
	done := js.results
	js.results = nil
	js.pending -= len(done)
	js.mu.Unlock()

	for _, r := range done {
		if r.err != nil {
			LogError("job '%s' failed: %s", r.task.Name, r.err)
			if r.task.OnFailure != nil {
				r.task.OnFailure(r.err)
			}
			continue
		}
		if r.task.OnComplete != nil {
			r.task.OnComplete(r.result)
		}
	}
	return len(done)
}

// Wait blocks until every submitted job finished, then runs their callbacks.
func (js *JobSystem) Wait() int {
	js.inflight.Wait()
	return js.Update()
}

/**
 * @brief Shuts the job system down after the queued jobs finished. Their
 * callbacks still run on the next Update.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	js.mu.Unlock()

	close(js.jobQueue)
	js.wg.Wait()
	return nil
}
