package lmsapi

// View models mirrored from backend responses. The portal owns none of this
// data and adds no derived state; cross-entity links stay as plain id fields
// resolved by separate calls. Date/time fields stay strings: they are only
// ever displayed, never computed on.

type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"` // ADMIN | MENTEE | TUTOR
	CreatedAt string `json:"createdAt,omitempty"`
}

// Course ids arrive as `id` on some endpoints and `courseId` on others.
type Course struct {
	ID                    int    `json:"id"`
	CourseID              int    `json:"courseId"`
	CourseName            string `json:"courseName"`
	Name                  string `json:"name"`
	CourseCode            string `json:"courseCode"`
	Description           string `json:"description"`
	TutorID               int    `json:"tutorId"`
	TutorName             string `json:"tutorName"`
	CourseStatus          string `json:"courseStatus"`
	StartDate             string `json:"startDate"`
	EndDate               string `json:"endDate"`
	CreatedDate           string `json:"createdDate"`
	MaxMentee             int    `json:"maxMentee"`
	TotalEnrollments      int    `json:"totalEnrollments"`
	SubjectRegistrationID int    `json:"subjectRegistrationId"`
}

// Key returns whichever id field the endpoint populated.
func (c Course) Key() int {
	if c.ID != 0 {
		return c.ID
	}
	return c.CourseID
}

// Title returns whichever name field the endpoint populated.
func (c Course) Title() string {
	if c.CourseName != "" {
		return c.CourseName
	}
	return c.Name
}

type Lesson struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Session struct {
	ID            int     `json:"id"`
	CourseID      int     `json:"courseId"`
	CourseName    string  `json:"courseName"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Room          string  `json:"room"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
	ForumID       int     `json:"forumId"`
}

type Exercise struct {
	ID              int    `json:"id"`
	LessonID        int    `json:"lessonId"`
	Title           string `json:"title"`
	Question        string `json:"question"`
	Deadline        string `json:"deadline"`
	AttemptLimit    int    `json:"attemptLimit"`
	SubmissionCount int    `json:"submissionCount"`
}

type Submission struct {
	ID          int      `json:"id"`
	ExerciseID  int      `json:"exerciseId"`
	Mentee      string   `json:"mentee"`
	TextAnswer  string   `json:"textAnswer"`
	FileURL     string   `json:"fileUrl"`
	Grade       *float64 `json:"grade"`
	SubmittedAt string   `json:"submittedAt"`
}

type Resource struct {
	ID           int    `json:"id"`
	LessonID     int    `json:"lessonId"`
	Title        string `json:"title"`
	ResourceType string `json:"resourceType"`
	FileURL      string `json:"fileUrl"`
}

type Rating struct {
	ID         int    `json:"id"`
	SessionID  int    `json:"sessionId"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
	TutorReply string `json:"tutorReply"`
	MenteeName string `json:"menteeName"`
	CreatedAt  string `json:"createdAt"`
}

type ReportTicket struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status"` // OPEN | IN_PROGRESS | RESOLVED | CLOSED
	AdminResponse string `json:"adminResponse"`
	CreatedAt     string `json:"createdAt"`
}

type Announcement struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	RecipientType string `json:"recipientType"` // ALL | MENTEE | TUTOR | USER
	AdminID       int    `json:"adminId"`
	CreatedAt     string `json:"createdAt"`
}

type ForumQuestion struct {
	ID         int    `json:"id"`
	ForumID    int    `json:"forumId"`
	Content    string `json:"content"`
	Answer     string `json:"answer"`
	AskerName  string `json:"askerName"`
	CreatedAt  string `json:"createdAt"`
	AnsweredAt string `json:"answeredAt"`
}

type Forum struct {
	ID        int `json:"id"`
	SessionID int `json:"sessionId"`
}

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type SubjectRegistration struct {
	ID          int    `json:"id"`
	SubjectID   int    `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	TutorID     int    `json:"tutorId"`
	TutorName   string `json:"tutorName"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type Conversation struct {
	ID       int    `json:"id"`
	MenteeID int    `json:"menteeId"`
	TutorID  int    `json:"tutorId"`
	Partner  string `json:"partner"`
}

type Message struct {
	ID             int    `json:"id"`
	ConversationID int    `json:"conversationId"`
	SenderID       int    `json:"senderId"`
	ReceiverID     int    `json:"receiverId"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
}

type Analytics struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalMentees     int     `json:"totalMentees"`
	TotalTutors      int     `json:"totalTutors"`
	TotalCourses     int     `json:"totalCourses"`
	ActiveCourses    int     `json:"activeCourses"`
	TotalEnrollments int     `json:"totalEnrollments"`
	AverageRating    float64 `json:"averageRating"`
}

type EnrollmentStats struct {
	CourseID int `json:"courseId"`
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}
