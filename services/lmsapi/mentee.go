package lmsapi

import (
	"context"
	"fmt"
)

// MenteeAPI wraps the /mentee/* endpoints.
type MenteeAPI struct {
	c *Client
}

func (m *MenteeAPI) GetProfile(ctx context.Context, id int) (*User, error) {
	var usr User
	if err := m.c.get(ctx, fmt.Sprintf("/mentee/%d", id), nil, &usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

// Enrollment

func (m *MenteeAPI) EnrollCourse(ctx context.Context, courseID int) error {
	return m.c.post(ctx, "/mentee/enroll", nil, map[string]int{"courseId": courseID}, nil)
}

func (m *MenteeAPI) UnenrollCourse(ctx context.Context, courseID int) error {
	return m.c.post(ctx, "/mentee/unenroll", nil, map[string]int{"courseId": courseID}, nil)
}

// Courses

func (m *MenteeAPI) GetMyCourses(ctx context.Context) (PagedResult[Course], error) {
	var res PagedResult[Course]
	err := m.c.get(ctx, "/mentee/mycourses", nil, &res)
	return res, err
}

func (m *MenteeAPI) GetMyEnrollCourses(ctx context.Context) (PagedResult[Course], error) {
	var res PagedResult[Course]
	err := m.c.get(ctx, "/mentee/myenrollcourses", nil, &res)
	return res, err
}

func (m *MenteeAPI) GetCourses(ctx context.Context, page, size int, tutor, status, courseName string) (PagedResult[Course], error) {
	var res PagedResult[Course]
	q := listQuery(page, size, map[string]string{"tutor": tutor, "status": status, "course_name": courseName})
	err := m.c.get(ctx, "/mentee/courses", q, &res)
	return res, err
}

func (m *MenteeAPI) GetCourseDetail(ctx context.Context, courseID int) (*Course, error) {
	var crs Course
	if err := m.c.get(ctx, fmt.Sprintf("/mentee/courses/%d", courseID), nil, &crs); err != nil {
		return nil, err
	}
	return &crs, nil
}

// Lessons & resources

func (m *MenteeAPI) GetLessons(ctx context.Context, courseID int) (PagedResult[Lesson], error) {
	var res PagedResult[Lesson]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/course/%d/lessons", courseID), nil, &res)
	return res, err
}

func (m *MenteeAPI) GetLesson(ctx context.Context, lessonID int) (*Lesson, error) {
	var lsn Lesson
	if err := m.c.get(ctx, fmt.Sprintf("/mentee/lesson/%d", lessonID), nil, &lsn); err != nil {
		return nil, err
	}
	return &lsn, nil
}

func (m *MenteeAPI) GetResources(ctx context.Context, lessonID int) (PagedResult[Resource], error) {
	var res PagedResult[Resource]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/lesson/%d/resources", lessonID), nil, &res)
	return res, err
}

// Exercises & submissions

func (m *MenteeAPI) GetExercises(ctx context.Context, lessonID int) (PagedResult[Exercise], error) {
	var res PagedResult[Exercise]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/lesson/%d/exercises", lessonID), nil, &res)
	return res, err
}

func (m *MenteeAPI) GetExerciseDetail(ctx context.Context, exerciseID int) (*Exercise, error) {
	var ex Exercise
	if err := m.c.get(ctx, fmt.Sprintf("/mentee/exercise/%d", exerciseID), nil, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (m *MenteeAPI) GetSubmissions(ctx context.Context, exerciseID int) (PagedResult[Submission], error) {
	var res PagedResult[Submission]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/exercise/%d/submissions", exerciseID), nil, &res)
	return res, err
}

func (m *MenteeAPI) SubmitExercise(ctx context.Context, exerciseID int, payload interface{}) (*Submission, error) {
	var sub Submission
	if err := m.c.post(ctx, fmt.Sprintf("/mentee/exercise/%d/submit", exerciseID), nil, payload, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Sessions & ratings

func (m *MenteeAPI) GetSessions(ctx context.Context, courseID int) (PagedResult[Session], error) {
	var res PagedResult[Session]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/course/%d/sessions", courseID), nil, &res)
	return res, err
}

func (m *MenteeAPI) GetSessionDetail(ctx context.Context, sessionID int) (*Session, error) {
	var sess Session
	if err := m.c.get(ctx, fmt.Sprintf("/mentee/course/sessions/%d", sessionID), nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *MenteeAPI) RateSession(ctx context.Context, sessionID, score int, comment string) error {
	payload := map[string]interface{}{"score": score, "comment": comment}
	return m.c.post(ctx, fmt.Sprintf("/mentee/session/%d/rating", sessionID), nil, payload, nil)
}

func (m *MenteeAPI) GetMyRatings(ctx context.Context) (PagedResult[Rating], error) {
	var res PagedResult[Rating]
	err := m.c.get(ctx, "/mentee/ratings", nil, &res)
	return res, err
}

// Forum

func (m *MenteeAPI) GetMyQuestions(ctx context.Context) (PagedResult[ForumQuestion], error) {
	var res PagedResult[ForumQuestion]
	err := m.c.get(ctx, "/mentee/questions", nil, &res)
	return res, err
}

func (m *MenteeAPI) GetQuestionsByForum(ctx context.Context, forumID int) (PagedResult[ForumQuestion], error) {
	var res PagedResult[ForumQuestion]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/forum/%d/questions", forumID), nil, &res)
	return res, err
}

func (m *MenteeAPI) CreateForum(ctx context.Context, sessionID int) (*Forum, error) {
	var frm Forum
	if err := m.c.post(ctx, fmt.Sprintf("/mentee/forum/%d", sessionID), nil, nil, &frm); err != nil {
		return nil, err
	}
	return &frm, nil
}

func (m *MenteeAPI) AskQuestion(ctx context.Context, forumID int, content string) error {
	return m.c.post(ctx, fmt.Sprintf("/mentee/forum/%d/questions", forumID), nil, map[string]string{"content": content}, nil)
}

// Conversations

func (m *MenteeAPI) GetMyConversations(ctx context.Context, menteeID int) (PagedResult[Conversation], error) {
	var res PagedResult[Conversation]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/%d/conversations", menteeID), nil, &res)
	return res, err
}

func (m *MenteeAPI) GetMessages(ctx context.Context, menteeID, conversationID int) (PagedResult[Message], error) {
	var res PagedResult[Message]
	err := m.c.get(ctx, fmt.Sprintf("/mentee/%d/conversation/%d/messages", menteeID, conversationID), nil, &res)
	return res, err
}

func (m *MenteeAPI) SendMessage(ctx context.Context, menteeID, conversationID, receiverID int, content string) error {
	payload := map[string]interface{}{"receiverId": receiverID, "content": content}
	return m.c.post(ctx, fmt.Sprintf("/mentee/%d/conversation/%d/messages", menteeID, conversationID), nil, payload, nil)
}

// Report tickets

func (m *MenteeAPI) CreateReportTicket(ctx context.Context, title, description string) (*ReportTicket, error) {
	payload := map[string]string{"title": title, "description": description}
	var tck ReportTicket
	if err := m.c.post(ctx, "/mentee/report-tickets", nil, payload, &tck); err != nil {
		return nil, err
	}
	return &tck, nil
}

func (m *MenteeAPI) GetMyReportTickets(ctx context.Context) (PagedResult[ReportTicket], error) {
	var res PagedResult[ReportTicket]
	err := m.c.get(ctx, "/mentee/report-tickets", nil, &res)
	return res, err
}
