package features

import (
	"sort"
	"strings"
)

type memStore struct {
	docs  map[string]map[string]interface{}
	reads int
}

func newMemStore(docs map[string]map[string]interface{}) *memStore {
	return &memStore{docs: docs}
}

func (s *memStore) ListAll(prefix string) ([]string, error) {
	var names []string
	for name := range s.docs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) Read(name string) (map[string]interface{}, error) {
	s.reads++
	doc, ok := s.docs[name]
	if !ok {
		return nil, ErrConfigNotFound
	}
	return doc, nil
}

type recordingLogger struct {
	errors   []error
	messages []string
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {}
func (l *recordingLogger) Info(format string, args ...interface{})  {}
func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}
func (l *recordingLogger) Error(err error, format string, args ...interface{}) {
	l.errors = append(l.errors, err)
}

// newTestManager returns a manager over a prebuilt collection of items.
func newTestManager(items ...*ConfigurationItem) (*Manager, *recordingLogger) {
	logger := &recordingLogger{}
	m := NewManager(nil, WithCollection(NewCollection(items...)), WithLogger(logger))
	return m, logger
}

func deps(names ...string) map[string]interface{} {
	list := make([]interface{}, 0, len(names))
	for _, n := range names {
		list = append(list, n)
	}
	return map[string]interface{}{
		"dependencies": map[string]interface{}{"config": list},
	}
}
