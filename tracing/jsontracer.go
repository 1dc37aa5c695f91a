package tracing

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// JSONTracer can write tasks into json format.
type JSONTracer struct {
	w             io.Writer
	lock          sync.Mutex
	firstTask     bool
	finished      bool
	filter        TaskFilter
	inflightTasks map[string]Task
}

// NewJSONTracer creates a JSONTracer that writes a JSON array of completed
// tasks to path. An empty path gets a generated name. The array is closed
// when the program exits through atexit, or by Finish.
func NewJSONTracer(path string, filter TaskFilter) (*JSONTracer, error) {
	if path == "" {
		path = "sramcheck_trace_" + xid.New().String() + ".json"
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating trace file")
	}

	fmt.Fprintf(os.Stderr, "Recording bus transfers in %s\n", path)

	t, err := NewJSONTracerWithWriter(f, filter)
	if err != nil {
		return nil, err
	}

	atexit.Register(func() {
		_ = t.Finish()
		_ = f.Close()
	})

	return t, nil
}

// NewJSONTracerWithWriter creates a JSONTracer that writes to w.
func NewJSONTracerWithWriter(w io.Writer, filter TaskFilter) (*JSONTracer, error) {
	if filter == nil {
		filter = AllTasks
	}

	if _, err := w.Write([]byte("[\n")); err != nil {
		return nil, err
	}

	return &JSONTracer{
		w:             w,
		firstTask:     true,
		filter:        filter,
		inflightTasks: make(map[string]Task),
	}, nil
}

// StartTask records the start of a task
func (t *JSONTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// EndTask writes the completed task.
func (t *JSONTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	originalTask, ok := t.inflightTasks[task.ID]
	if !ok || t.finished {
		return
	}

	originalTask.EndTime = task.EndTime
	delete(t.inflightTasks, task.ID)

	if t.firstTask {
		t.firstTask = false
	} else {
		t.mustWrite([]byte(",\n"))
	}

	b, err := json.Marshal(originalTask)
	if err != nil {
		panic(err)
	}

	t.mustWrite(b)
}

// Finish closes the JSON array. Later tasks are dropped.
func (t *JSONTracer) Finish() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.finished {
		return nil
	}

	t.finished = true

	_, err := t.w.Write([]byte("\n]"))

	return err
}

func (t *JSONTracer) mustWrite(b []byte) {
	if _, err := t.w.Write(b); err != nil {
		panic(err)
	}
}
