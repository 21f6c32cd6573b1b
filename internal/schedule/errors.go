package schedule

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors — ошибки валидации по полям: поле -> список сообщений.
// Проверки независимы и накапливаются, а не обрываются на первой.
type ValidationErrors map[string][]string

func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e ValidationErrors) Any() bool {
	return len(e) > 0
}

// On возвращает сообщения по конкретному полю.
func (e ValidationErrors) On(field string) []string {
	return e[field]
}

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, ", ")
}
