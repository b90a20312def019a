package echoportal

import (
	"time"

	"github.com/darasa-lms/portal/core"
)

const dateLayout = "2006-01-02"

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.Email = core.CleanString(f.Email, true /* lower */)
	return core.Validate.Struct(f)
}

type RegisterForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
	Role            string `form:"role" validate:"omitempty,lmsrole"`
}

func (f *RegisterForm) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	return core.Validate.Struct(f)
}

type UserForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,lmsrole"`
}

func (f *UserForm) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	return core.Validate.Struct(f)
}

// CourseForm is shared by admin and tutor course create/update.
type CourseForm struct {
	CourseName  string `form:"courseName" json:"courseName" validate:"required"`
	Description string `form:"description" json:"description"`
	StartDate   string `form:"startDate" json:"startDate" validate:"required"`
	EndDate     string `form:"endDate" json:"endDate" validate:"required"`
	MaxMentee   int    `form:"maxMentee" json:"maxMentee"`
	Status      string `form:"status" json:"courseStatus"`
}

// Validate rejects an end date before the start date locally, before the
// backend ever sees the payload.
func (f *CourseForm) Validate() error {
	f.CourseName = core.CleanString(f.CourseName)
	if err := core.Validate.Struct(f); err != nil {
		return err
	}
	start, err := time.Parse(dateLayout, f.StartDate)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "startDate", Error: "invalid date"})
	}
	end, err := time.Parse(dateLayout, f.EndDate)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: "invalid date"})
	}
	if end.Before(start) {
		return core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: "end date must not be before start date"})
	}
	return nil
}

type AnnouncementForm struct {
	Title         string `form:"title" validate:"required"`
	Content       string `form:"content" validate:"required"`
	RecipientType string `form:"recipientType" validate:"required,oneof=ALL MENTEE TUTOR USER"`
	RecipientID   int    `form:"recipientId"`
}

func (f *AnnouncementForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	if err := core.Validate.Struct(f); err != nil {
		return err
	}
	if f.RecipientType == "USER" && f.RecipientID == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "recipientId", Error: "this field is required"})
	}
	return nil
}

type TicketForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func (f *TicketForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	return core.Validate.Struct(f)
}

type TicketUpdateForm struct {
	Status        string `form:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	AdminResponse string `form:"adminResponse"`
}

func (f *TicketUpdateForm) Validate() error { return core.Validate.Struct(f) }

type QuestionForm struct {
	Content string `form:"content" validate:"required"`
}

func (f *QuestionForm) Validate() error {
	f.Content = core.CleanString(f.Content)
	return core.Validate.Struct(f)
}

type RatingForm struct {
	Score   int    `form:"score" validate:"required,min=1,max=5"`
	Comment string `form:"comment"`
}

func (f *RatingForm) Validate() error { return core.Validate.Struct(f) }

type SubmissionForm struct {
	TextAnswer string `form:"textAnswer" json:"textAnswer"`
	FileURL    string `form:"fileUrl" json:"fileUrl"`
}

func (f *SubmissionForm) Validate() error {
	if f.TextAnswer == "" && f.FileURL == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "textAnswer", Error: "provide an answer or a file link"})
	}
	return nil
}

type GradeForm struct {
	Grade float64 `form:"grade" validate:"min=0,max=10"`
}

func (f *GradeForm) Validate() error { return core.Validate.Struct(f) }

type LessonForm struct {
	CourseID    int    `form:"courseId" json:"courseId" validate:"required"`
	Title       string `form:"title" json:"title" validate:"required"`
	Description string `form:"description" json:"description"`
}

func (f *LessonForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	return core.Validate.Struct(f)
}

type SessionForm struct {
	CourseID  int    `form:"courseId" json:"courseId" validate:"required"`
	Title     string `form:"title" json:"title"`
	Type      string `form:"type" json:"type"`
	Date      string `form:"date" json:"date" validate:"required"`
	StartTime string `form:"startTime" json:"startTime" validate:"required"`
	EndTime   string `form:"endTime" json:"endTime" validate:"required"`
	Room      string `form:"room" json:"room"`
}

func (f *SessionForm) Validate() error {
	if err := core.Validate.Struct(f); err != nil {
		return err
	}
	if _, err := time.Parse(dateLayout, f.Date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
	}
	return nil
}

type ExerciseForm struct {
	LessonID     int    `form:"lessonId" json:"lessonId" validate:"required"`
	Title        string `form:"title" json:"title" validate:"required"`
	Question     string `form:"question" json:"question"`
	Deadline     string `form:"deadline" json:"deadline"`
	AttemptLimit int    `form:"attemptLimit" json:"attemptLimit"`
}

func (f *ExerciseForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	return core.Validate.Struct(f)
}

type ResourceForm struct {
	LessonID     int    `form:"lessonId" json:"lessonId" validate:"required"`
	Title        string `form:"title" json:"title" validate:"required"`
	ResourceType string `form:"resourceType" json:"resourceType"`
	FileURL      string `form:"fileUrl" json:"fileUrl" validate:"required,url"`
}

func (f *ResourceForm) Validate() error {
	f.Title = core.CleanString(f.Title)
	return core.Validate.Struct(f)
}

type SubjectRegistrationForm struct {
	SubjectID int    `form:"subjectId" json:"subjectId" validate:"required"`
	Note      string `form:"note" json:"note"`
}

func (f *SubjectRegistrationForm) Validate() error { return core.Validate.Struct(f) }
