package domain

import (
	"regexp"
	"strings"
)

const statusLabelMaxLength = 50

var colorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// TaskStatus is a colored label assignable to tasks.
type TaskStatus struct {
	ID        string `json:"id" yaml:"-"`
	Status    string `json:"status" yaml:"status"`
	BgColor   string `json:"bg_color" yaml:"bgColor"`
	TextColor string `json:"text_color" yaml:"textColor"`
}

func (s *TaskStatus) Normalize() {
	s.Status = strings.TrimSpace(s.Status)
	s.BgColor = strings.TrimSpace(s.BgColor)
	s.TextColor = strings.TrimSpace(s.TextColor)
}

func (s *TaskStatus) Validate() error {
	if s == nil {
		return ErrInvalidPayload
	}
	if s.Status == "" || len(s.Status) > statusLabelMaxLength {
		return Invalid("status label must be between 1 and %d characters", statusLabelMaxLength)
	}
	if !colorPattern.MatchString(s.BgColor) {
		return Invalid("background color must be a hex color")
	}
	if !colorPattern.MatchString(s.TextColor) {
		return Invalid("text color must be a hex color")
	}
	return nil
}
