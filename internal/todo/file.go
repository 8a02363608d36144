package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// readTasks loads and validates a task file. A missing file yields an empty
// mapping and exists=false.
func readTasks(path string) (tasks map[int]Task, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[int]Task{}, false, nil
		}
		return nil, false, fmt.Errorf("read todo file: %w", err)
	}

	tasks, err = decodeTasks(data)
	if err != nil {
		return nil, true, err
	}
	return tasks, true, nil
}

func decodeTasks(data []byte) (map[int]Task, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	if result := Validate(data); !result.Valid {
		return nil, fmt.Errorf("validate todo file: %w", result.Err())
	}

	var raw map[string]Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	tasks := make(map[int]Task, len(raw))
	for key, task := range raw {
		id, err := strconv.Atoi(key)
		if err != nil || id < 1 {
			return nil, &ValidationError{
				Path: strconv.Quote(key),
				Err:  fmt.Errorf("task id must be a positive integer"),
			}
		}
		if _, dup := tasks[id]; dup {
			return nil, &ValidationError{
				Path: strconv.Quote(key),
				Err:  fmt.Errorf("duplicate task id %d", id),
			}
		}
		tasks[id] = task
	}
	return tasks, nil
}

// encodeTasks renders tasks as an indented JSON object with keys in
// ascending numeric order and a trailing newline.
func encodeTasks(tasks map[int]Task) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range sortedIDs(tasks) {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(tasks[id])
		if err != nil {
			return nil, fmt.Errorf("marshal task %d: %w", id, err)
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(id)))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func sortedIDs(tasks map[int]Task) []int {
	ids := make([]int, 0, len(tasks))
	for id := range tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
