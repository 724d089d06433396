// Package model contains domain models passed between layers.
package model

// DutyRecord is one assignment of a set of invigilators to supervise one room
// for one course's exam session at a given date and time. Identity is
// structural; the same (course, room) may appear more than once when the
// source text repeats a block, and that is kept as-is.
type DutyRecord struct {
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Course       string   `json:"course,omitempty"`
	Title        string   `json:"title,omitempty"`
	Room         string   `json:"room"`
	Invigilators []string `json:"invigilators"`
}

// CourseBlock is the consolidated multi-line text span belonging to one course
// entry, whitespace-normalized before segmentation into per-room duties.
type CourseBlock struct {
	Code    string
	Title   string
	RawText string
}
