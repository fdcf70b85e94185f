package app_errors

import "errors"

// Lookup misses. Callers recover from these locally and render "not found".
var ErrCourseNotFound = errors.New("course not found")
var ErrChapterNotFound = errors.New("chapter not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrWaitlistEntryNotFound = errors.New("waitlist entry not found")

// Invariant violations. Surfaced to the caller, never swallowed.
var ErrCourseNotPublished = errors.New("course is not published")
var ErrCourseNotFree = errors.New("course is not free")
var ErrCourseFree = errors.New("course is free, nothing to pay")
var ErrInvalidDiscount = errors.New("discount price must be lower than price")
var ErrAmountMismatch = errors.New("amount must equal original price minus discount")
var ErrNegativeAmount = errors.New("amount must not be negative")
var ErrInvalidAmount = errors.New("amount must be positive")
var ErrInvalidContact = errors.New("contact is malformed")
var ErrLessonNotInCourse = errors.New("lesson does not belong to course")
var ErrDuplicateChapter = errors.New("chapter with this order already exists in the course")
var ErrDuplicateLesson = errors.New("lesson with this order already exists in the chapter")
var ErrChaptersDiffer = errors.New("lessons belong to different chapters")
var ErrCoursesDiffer = errors.New("chapters belong to different courses")
var ErrNoPendingEnrollment = errors.New("no pending enrollment to resolve")

// Cover upload validation.
var ErrNotImage = errors.New("file is not an image")
var ErrFileSize = errors.New("file is too large")
var ErrCoverNotFound = errors.New("course has no cover")
